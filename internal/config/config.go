package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Workbook struct {
		Path string
	} `mapstructure:"workbook"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Report struct {
		Dir string `mapstructure:"dir"` // defaults to Plots next to the workbook
	} `mapstructure:"report"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// SaveWorkbookPath writes the chosen workbook path back into the config
// file so the next run opens the same workbook.
func SaveWorkbookPath(path, workbookPath string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	v.Set("workbook.path", workbookPath)
	return v.WriteConfig()
}
