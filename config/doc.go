// Package config reads MGI-style configuration files: flat NAME/value parameter lists in
// one of three syntaxes, selected by a "#format:" first line.
//
//	#format: tab          #format: sh           #format: csh
//	DBSERVER  prod1       DBSERVER=prod1        setenv DBSERVER prod1
//	DBNAME    "mgd"       DBNAME="mgd"          set DBNAME = "mgd"
//
// A file without a "#format:" line uses the tab syntax. Values may refer to other
// parameters as ${NAME}; references are resolved when a value is read. A GLOBAL_CONFIG
// parameter names a further configuration file whose parameters are merged in, with lower
// precedence.
package config
