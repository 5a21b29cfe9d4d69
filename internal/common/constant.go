package common

// TokenPlaceholder is the value shipped in sample configs; a credential equal
// to it is treated as absent.
const TokenPlaceholder = "YOUR_GITHUB_TOKEN_HERE"
