// Package version provides build metadata for the identity backend.
//
// Version, commit, build id and build time are set at compile time via
// -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/identity-backend/version.GitCommit=$(git rev-parse HEAD)"
//
// When the commit or build id is not embedded, the CI environment is used
// (GITHUB_SHA, NETLIFY_COMMIT_REF, COMMIT_REF and GITHUB_RUN_ID, BUILD_ID).
package version
