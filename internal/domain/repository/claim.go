package repository

// Claim es un par (type, value) asociado a un User o Role.
// No es único: se permiten duplicados al insertar.
type Claim struct {
	Type  string `bson:"type"`
	Value string `bson:"value"`
}

// Matches indica si el claim coincide en type y value.
func (c Claim) Matches(other Claim) bool {
	return c.Type == other.Type && c.Value == other.Value
}
