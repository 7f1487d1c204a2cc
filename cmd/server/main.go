package main

import (
	"os"

	"github.com/spf13/viper"

	"visionsuite/pkg/api"
	"visionsuite/pkg/log"
)

func main() {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "could not read config file")
	}

	//first - create project's data root dir
	if _, err := os.Stat(viper.GetString("directory.root")); err != nil {
		if os.IsNotExist(err) {
			if err := os.Mkdir(viper.GetString("directory.root"), 0766); err != nil {
				log.Error(log.Fields{"dir": viper.GetString("directory.root"), "error": err.Error()}, "could not create directory")
			}
		}
	}

	//create missing directories from config file
	for _, dir := range viper.GetStringMap("directory") {
		if _, err := os.Stat(dir.(string)); err != nil {
			if os.IsNotExist(err) {
				if err := os.Mkdir(dir.(string), 0766); err != nil {
					log.Error(log.Fields{"dir": dir.(string), "error": err.Error()}, "could not create directory")
				}
			}
		}
	}

	if viper.GetString("http.port") == "" || viper.GetString("directory.exports") == "" {
		log.Fatal(nil, "missing critical configurations")
	}

	r := api.SetRouter(api.NewServer())
	if err := r.Run(":" + viper.GetString("http.port")); err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "server stopped")
	}
}
