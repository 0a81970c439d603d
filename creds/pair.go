package creds

// Pair is the access/refresh credential pair issued by the optimization
// service. Both values are opaque to the client; the access token authorizes
// individual requests and the refresh token is used solely to obtain a new
// pair.
type Pair struct {
	Access  string
	Refresh string
}

// Valid reports whether the pair is complete. A partial pair is treated
// exactly like an absent one everywhere in the client.
func (p Pair) Valid() bool {
	return p.Access != "" && p.Refresh != ""
}
