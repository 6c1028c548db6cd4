// Package config loads generator options from YAML.
//
// Every key is optional:
//
//	title: RPC API
//	apiVersion: 1.0.0
//	serverUrl: http://localhost:8080
//	serverDescription: Default server
//	endpointPrefix: /rpc
//	roots: [./services]
//	output: openapi.json
//	reservedWords: [query]
//	dateTypes: example.com/calendar.Day
//
// List keys accept a single string or a sequence. Relative roots and output
// are resolved against the directory of the config file.
package config
