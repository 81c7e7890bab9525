package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied; a zero timeout also applies
// when source.SetFields marks it as written.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeString(target, "apiUrl", &target.APIURL, source.APIURL, sourceType)
	mergeString(target, "apiHost", &target.APIHost, source.APIHost, sourceType)
	if source.APIPort != 0 {
		target.APIPort = source.APIPort
		target.Sources["apiPort"] = sourceType
	}
	mergeString(target, "apiBase", &target.APIBase, source.APIBase, sourceType)
	mergeString(target, "apiToken", &target.APIToken, source.APIToken, sourceType)
	// Zero disables the timeout, so an explicit zero must win.
	if source.Timeout != 0 || source.SetFields["timeout"] {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}
	mergeString(target, "logLevel", &target.LogLevel, source.LogLevel, sourceType)
	mergeString(target, "logFormat", &target.LogFormat, source.LogFormat, sourceType)
	mergeString(target, "language", &target.Language, source.Language, sourceType)
	mergeString(target, "serveAddr", &target.ServeAddr, source.ServeAddr, sourceType)
}

func mergeString(target *CLIConfig, key string, dst *string, value, sourceType string) {
	if value == "" {
		return
	}
	*dst = value
	target.Sources[key] = sourceType
}
