package config

import "fmt"

// Validate checks the configuration for structural problems before any
// component is built from it.
func Validate(cfg *Config) error {
	if len(cfg.Instruments) == 0 {
		return ErrNoInstruments
	}

	for _, inst := range cfg.Instruments {
		if inst.Symbol == "" {
			return ErrInstrumentSymbolRequired
		}
		if len(inst.Sources) == 0 {
			return fmt.Errorf("%w: %s", ErrNoSourcesForInstrument, inst.Symbol)
		}
		for _, src := range inst.Sources {
			if err := validateSource(inst.Symbol, src); err != nil {
				return err
			}
		}
	}

	if cfg.Monitor.Enabled && cfg.Monitor.APIURL == "" {
		return ErrMonitorURLRequired
	}
	if cfg.Monitor.PollInterval.ToDuration() <= 0 || cfg.Monitor.Retention.ToDuration() <= 0 {
		return fmt.Errorf("%w: monitor", ErrNonPositiveInterval)
	}
	if cfg.Cache.TTL.ToDuration() <= 0 {
		return fmt.Errorf("%w: cache ttl", ErrNonPositiveInterval)
	}
	if cfg.Report.Interval.ToDuration() <= 0 {
		return fmt.Errorf("%w: report interval", ErrNonPositiveInterval)
	}

	return nil
}

func validateSource(instrument string, src SourceConfig) error {
	switch src.Type {
	case "":
		return fmt.Errorf("%w: instrument %s", ErrSourceTypeRequired, instrument)
	case "binance", "coinbase", "kraken", "yahoo":
		if src.Symbol == "" {
			return fmt.Errorf("%w: instrument %s, type %s", ErrSymbolRequired, instrument, src.Type)
		}
	case "goldprice":
		if src.Metal == "" {
			return fmt.Errorf("%w: instrument %s", ErrMetalRequired, instrument)
		}
		if src.Currency == "" {
			return fmt.Errorf("%w: instrument %s", ErrCurrencyRequired, instrument)
		}
	case "aggregate":
		if len(src.Sources) == 0 {
			return fmt.Errorf("%w: instrument %s", ErrAggregateNeedsSources, instrument)
		}
		for _, nested := range src.Sources {
			if err := validateSource(instrument, nested); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown source type %q for instrument %s", src.Type, instrument)
	}
	return nil
}
