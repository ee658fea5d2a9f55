package service

// SecretGenerator produces unguessable URL-safe values for ephemeral tokens.
type SecretGenerator interface {
	Generate() (string, error)
}
