// Package mapping provides the YAML declaration file: generation options and,
// optionally, aggregates declared directly instead of read from source.
//
// # Schema Overview
//
//	version: "1"
//	strategy: full            # full | shallow
//	dialect:
//	  owned_text: String
//	  borrowed_text: str
//	  optional: Option
//	  sequence: Vec
//	markers:
//	  constructor: generate_interface(constructor)
//	  accessor: generate_interface   # "-" disables a marker
//	sources:
//	  files: [src/model.rs]          # a single string is accepted too
//	  marker: Accessors              # select #[derive(Accessors)] structs
//	output:
//	  dir: ./generated
//	  suffix: _accessors.rs
//	aggregates:
//	  - name: Person
//	    visibility: public
//	    fields:
//	      - name: name
//	        visibility: public
//	        type: String
//	      - "pub nickname: Option<String>"   # shorthand
//
// Field types are written in source syntax and parsed with
// analyze.ParseType.
package mapping
