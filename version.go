package wallrotate

import _ "embed"

//go:embed VERSION
var Version string

//go:embed wallrotate.toml
var DefaultConfig string
