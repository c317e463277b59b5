// Package config handles configuration loading for blogfront.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// A .env file in the working directory is loaded before expansion, so local
// development can keep the upstream URL and listen port out of the YAML file.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	upstream:
//	  base_url: "${BLOG_API_BASE_URL}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  listen_addr: "0.0.0.0:3000"
//
// Upstream content API:
//
//	upstream:
//	  base_url: "http://localhost:8000"
//	  timeout: "15s"
//
// Session file (used by the blogfront-admin CLI):
//
//	session:
//	  file: "~/.local/share/blogfront/session.json"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
