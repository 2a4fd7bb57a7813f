package domain

// GoogleIdentity is the user information extracted from a verified Google ID
// token. Verification against Google's public keys and the configured
// audience happens before a value of this type exists.
type GoogleIdentity struct {
	Email      string
	Name       string
	Subject    string // Google's stable user id ("sub" claim)
	PictureURL string
}
