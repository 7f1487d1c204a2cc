package main

import (
	"os"

	"github.com/spf13/viper"

	"visionsuite/pkg/detect"
	"visionsuite/pkg/log"
)

func main() {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "could not read config file")
	}

	//create missing directories from config file
	for _, dir := range viper.GetStringMap("directory") {
		if _, err := os.Stat(dir.(string)); err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(dir.(string), 0766); err != nil {
					log.Error(log.Fields{"dir": dir.(string), "error": err.Error()}, "could not create directory")
				}
			}
		}
	}

	if viper.GetString("model.graph") == "" || viper.GetString("model.config") == "" {
		log.Fatal(nil, "missing critical configurations")
	}

	//model load and camera open failures are fatal, the loop is never entered
	detector, err := detect.NewDetector(
		viper.GetString("model.graph"),
		viper.GetString("model.config"),
		viper.GetFloat64("model.confidence_threshold"),
	)
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "could not load detection model")
	}
	defer detector.Close()

	log.Info(log.Fields{"graph": viper.GetString("model.graph")}, "detection model loaded")

	loop, err := detect.NewLoop(detector, detect.LoopConfig{
		Device:        viper.GetInt("camera.device"),
		Width:         viper.GetFloat64("camera.width"),
		Height:        viper.GetFloat64("camera.height"),
		ScreenshotDir: viper.GetString("directory.screenshots"),
	})
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "could not open camera")
	}
	defer loop.Close()

	log.Info(nil, "face detection ready, press 'q' to quit, 's' for a screenshot")

	if err := loop.Run(); err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "capture loop stopped")
	}
}
