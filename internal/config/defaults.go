package config

const (
	defaultBaseURL        = "http://localhost:8080/api/v1"
	defaultRequestTimeout = 0
	defaultFixedSlot      = 10
	defaultFanout         = true
	defaultColumns        = 3
	defaultLogLevel       = "info"
	defaultLogFile        = "~/.local/state/clipdeck/clipdeck.log"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Deck: Deck{
			FixedSlot: defaultFixedSlot,
			Fanout:    defaultFanout,
			Columns:   defaultColumns,
			Labels: Labels{
				ByPosition: map[string]string{
					"0": "Clip A",
					"1": "Clip B",
					"2": "Clip C",
				},
				ByID: map[string]string{},
			},
		},
		Logging: Logging{
			Level: defaultLogLevel,
			File:  defaultLogFile,
		},
	}
}
