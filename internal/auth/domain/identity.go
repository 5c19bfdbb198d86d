package domain

// Identity is the caller resolved by the authentication guard. The zero value
// is the anonymous caller.
type Identity struct {
	Username string
}

func Anonymous() Identity {
	return Identity{}
}

func (i Identity) Authenticated() bool {
	return i.Username != ""
}
