package models

import (
	"os"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Debug bool `envconfig:"VARQ_DEBUG" yaml:"debug"`

	Api struct {
		Port string `envconfig:"VARQ_API_INTERNAL_PORT" yaml:"port"`
		Url  string `envconfig:"VARQ_API_URL" yaml:"url"`
	} `yaml:"api"`

	Mongo struct {
		Url            string `envconfig:"VARQ_MONGO_URL" yaml:"url"`
		Database       string `envconfig:"VARQ_MONGO_DATABASE" yaml:"database"`
		Username       string `envconfig:"VARQ_MONGO_USERNAME" yaml:"username"`
		Password       string `envconfig:"VARQ_MONGO_PASSWORD" yaml:"password"`
		TimeoutSeconds int    `envconfig:"VARQ_MONGO_TIMEOUT_SECONDS" yaml:"timeoutSeconds"`
	} `yaml:"mongo"`

	Query struct {
		// genome build used for gene resolution (37 or 38)
		GenomeBuild string `envconfig:"VARQ_QUERY_GENOME_BUILD" yaml:"genomeBuild"`
		// rank-score floor for cross-case gene-variant queries
		CrossCaseRankScoreThreshold float64 `envconfig:"VARQ_QUERY_CROSS_CASE_RANK_SCORE_THRESHOLD" yaml:"crossCaseRankScoreThreshold"`
		// default page size for executed queries
		ResultLimit int `envconfig:"VARQ_QUERY_RESULT_LIMIT" yaml:"resultLimit"`
		// minutes between institute soft-filter cache refreshes
		InstituteCacheRefreshMinutes int `envconfig:"VARQ_QUERY_INSTITUTE_CACHE_REFRESH_MINUTES" yaml:"instituteCacheRefreshMinutes"`
	} `yaml:"query"`
}

// ApplyDefaults fills the values a bare environment leaves empty.
func (cfg *Config) ApplyDefaults() {
	if cfg.Api.Port == "" {
		cfg.Api.Port = "5000"
	}
	if cfg.Mongo.Url == "" {
		cfg.Mongo.Url = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "varq"
	}
	if cfg.Mongo.TimeoutSeconds == 0 {
		cfg.Mongo.TimeoutSeconds = 15
	}
	if cfg.Query.GenomeBuild == "" {
		cfg.Query.GenomeBuild = "37"
	}
	if cfg.Query.CrossCaseRankScoreThreshold == 0 {
		cfg.Query.CrossCaseRankScoreThreshold = 15
	}
	if cfg.Query.ResultLimit == 0 {
		cfg.Query.ResultLimit = 100
	}
	if cfg.Query.InstituteCacheRefreshMinutes == 0 {
		cfg.Query.InstituteCacheRefreshMinutes = 30
	}
}

// OverlayYamlFile layers a yaml config file on top of the
// environment-sourced values (used by deployments and tests).
func (cfg *Config) OverlayYamlFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	return decoder.Decode(cfg)
}
