package auth

import "context"

type profileKey struct{}

// ContextWithProfile stores the authenticated profile in ctx.
func ContextWithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

// ProfileFromContext returns the profile stored by ContextWithProfile.
func ProfileFromContext(ctx context.Context) (*Profile, bool) {
	p, ok := ctx.Value(profileKey{}).(*Profile)
	return p, ok && p != nil
}
