package main

import (
	"flag"
	"os"
	"time"

	"atvcert/config"
	"atvcert/internal/certstore"
	"atvcert/internal/logger"
	"atvcert/internal/profile"
	"atvcert/internal/selfsigned"
	"atvcert/internal/validation"
	"atvcert/internal/version"
)

var (
	hostnameFlag = flag.String("hostname", "", "Hostname for the certificate subject and SAN (default from config)")
	certFileFlag = flag.String("cert", "", "Certificate output path (default from config)")
	keyFileFlag  = flag.String("key", "", "Private key output path (default from config)")
	daysFlag     = flag.Int("days", 0, "Certificate validity in days (default from config)")
	profileFlag  = flag.String("profile", "", "YAML profile file overriding the defaults")
	renewFlag    = flag.Bool("renew", false, "Only regenerate when the stored pair is missing or expiring")
	serveFlag    = flag.Bool("serve", false, "Serve a local TLS endpoint with the generated pair")
	addrFlag     = flag.String("addr", "", "Listen address for -serve (default from config)")
)

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.Get()

	log.Info().
		Str("version", version.Version).
		Msg("atvcert starting")

	if *hostnameFlag != "" {
		cfg.Hostname = *hostnameFlag
	}
	if *certFileFlag != "" {
		cfg.CertFile = *certFileFlag
	}
	if *keyFileFlag != "" {
		cfg.KeyFile = *keyFileFlag
	}
	if *daysFlag != 0 {
		cfg.ValidityDays = *daysFlag
	}
	if *addrFlag != "" {
		cfg.ServeAddr = *addrFlag
	}

	opts := selfsigned.DefaultOptions()
	opts.Hostname = cfg.Hostname
	opts.Validity = time.Duration(cfg.ValidityDays) * 24 * time.Hour
	store := cfg.Store()

	if *profileFlag != "" {
		p, err := profile.FromFile(*profileFlag)
		if err != nil {
			log.Fatal().Err(err).Str("profile", *profileFlag).Msg("could not load profile")
		}
		opts, err = p.Apply(opts)
		if err != nil {
			log.Fatal().Err(err).Str("profile", *profileFlag).Msg("invalid profile")
		}
		store = p.Store(store)
	}

	if err := validation.ValidateHostname(opts.Hostname); err != nil {
		log.Fatal().Err(err).Str("hostname", opts.Hostname).Msg("invalid hostname")
	}
	if err := validation.ValidateValidityDays(int(opts.Validity / (24 * time.Hour))); err != nil {
		log.Fatal().Err(err).Msg("invalid validity")
	}
	for _, path := range []string{store.CertFile, store.KeyFile} {
		if err := validation.ValidateOutputPath(path); err != nil {
			log.Fatal().Err(err).Msg("invalid output path")
		}
	}

	if *serveFlag {
		if err := serve(cfg, opts, store); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
		return
	}

	if *renewFlag && !store.NeedsRenewal(cfg.RenewalWindow) {
		log.Info().
			Str("cert_file", store.CertFile).
			Msg("stored pair still valid, nothing to do")
		return
	}

	if err := generate(opts, store); err != nil {
		log.Error().Err(err).Msg("generation failed")
		os.Exit(1)
	}
}

// generate builds a fresh pair and overwrites the stored files.
func generate(opts selfsigned.Options, store certstore.Store) error {
	log := logger.Get()

	pair, err := selfsigned.Generate(opts)
	if err != nil {
		return err
	}
	if err := store.Save(pair); err != nil {
		return err
	}

	log.Info().
		Str("hostname", opts.Hostname).
		Str("serial", pair.Certificate.SerialNumber.String()).
		Time("not_before", pair.Certificate.NotBefore).
		Time("not_after", pair.Certificate.NotAfter).
		Str("cert_file", store.CertFile).
		Str("key_file", store.KeyFile).
		Msg("certificate pair written")
	return nil
}
