// Package config loads adapter settings from the environment.
//
// Each adapter declares its own struct with env tags (pg.Config reads PG_*,
// redis.Config reads REDIS_*, s3.Config reads S3_*). Load parses the
// environment into it with caarlos0/env. A .env file in the working
// directory is read once, on first use, and never overrides variables that
// are already set.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Values are cached per type, so repeated loads of the same struct in one
// process return the first result even if the environment changed since.
// MustLoad panics instead of returning the error.
package config
