package adapter

import "context"

// Session is the minted credential handed back to a seller after a
// successful claim or resume.
type Session struct {
	// Handle is the synthetic account principal, derived from the code
	// hash so the same plaintext always maps to the same principal.
	Handle string
	// Token is the signed bearer credential.
	Token string
	// URL is a magic-link style login URL embedding the token.
	URL string
}

// SessionIssuer is the hex port for producing an authenticated session
// once the registry has resolved a code to a profile. Implementations
// must never need the plaintext code; the hash is the stable key.
type SessionIssuer interface {
	// IssueSellerSession mints a session for the seller profile bound to
	// the given code hash.
	IssueSellerSession(ctx context.Context, codeHash, profileID string) (*Session, error)
}
