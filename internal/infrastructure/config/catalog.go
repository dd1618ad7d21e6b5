package config

// CatalogConfig holds paths to the offline catalog resource files
type CatalogConfig struct {
	TypeIDPath     string `mapstructure:"typeid_path" validate:"required"`
	BlueprintsPath string `mapstructure:"blueprints_path" validate:"required"`
	RegionsPath    string `mapstructure:"regions_path" validate:"required"`
}
