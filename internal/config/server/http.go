package server

type HTTPServerConfig struct {
	Address      string `mapstructure:"address"       yaml:"address"`
	TenantHeader string `mapstructure:"tenant_header" yaml:"tenant_header"`
	Mode         string `mapstructure:"mode"          yaml:"mode"`
}
