// Package config loads runtime configuration for the GitPress CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-o string   owner namespace of both repositories
//	-r string   content repository name
//	-b string   content branch
//	-d string   local snapshot database path
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the request timeout, so the value
// can be either a string like "30s" or integer nanoseconds:
//
//	{
//	  "owner": "octocat",
//	  "content_repo": "astro_blog",
//	  "branch": "main",
//	  "image_repo": "picx-images-hosting",
//	  "image_branch": "master",
//	  "image_path_prefix": "images",
//	  "cdn_mode": "jsdelivr",
//	  "request_timeout": "30s"
//	}
//
// Note: the GitHub token is not part of this package; it lives behind the
// creds.Store boundary.
package config
