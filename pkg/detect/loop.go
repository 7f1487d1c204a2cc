package detect

import (
	"fmt"
	"path"

	"gocv.io/x/gocv"

	"visionsuite/pkg/log"
)

//LoopConfig carries everything the capture loop needs from the config file
type LoopConfig struct {
	Device        int
	Width         float64
	Height        float64
	ScreenshotDir string
}

//Loop owns the camera, the display window and the detection cache for one
//run of the live pipeline. Strictly single-threaded: every iteration blocks
//on capture, optionally on inference, then on display.
type Loop struct {
	webcam   *gocv.VideoCapture
	window   *gocv.Window
	detector *Detector
	cache    *ResultCache
	cfg      LoopConfig
}

//NewLoop opens the camera and the window. A camera that cannot be opened is
//an initialization failure, the loop is never entered.
func NewLoop(detector *Detector, cfg LoopConfig) (*Loop, error) {
	webcam, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("NewLoop: could not open camera device %d, got '%v'", cfg.Device, err)
	}

	if cfg.Width > 0 {
		webcam.Set(gocv.VideoCaptureFrameWidth, cfg.Width)
	}
	if cfg.Height > 0 {
		webcam.Set(gocv.VideoCaptureFrameHeight, cfg.Height)
	}

	return &Loop{
		webcam:   webcam,
		window:   gocv.NewWindow("Face Detection"),
		detector: detector,
		cache:    NewResultCache(),
		cfg:      cfg,
	}, nil
}

//Close releases the capture device and the window
func (l *Loop) Close() {
	l.webcam.Close()
	l.window.Close()
}

//Run polls frames until the quit key is pressed. Detection runs on even frame
//indices only, odd frames reuse the cached result. A failed inference falls
//back to the last good result instead of reaching the display stage, if no
//prior result exists the frame is shown unannotated.
func (l *Loop) Run() error {
	frame := gocv.NewMat()
	defer frame.Close()

	frameCount := 0

	for {
		if ok := l.webcam.Read(&frame); !ok {
			return fmt.Errorf("Run: could not read frame from camera device %d", l.cfg.Device)
		}
		if frame.Empty() {
			continue
		}

		//mirror the frame horizontally
		gocv.Flip(frame, &frame, 1)

		var current Result
		var ok bool

		if frameCount%2 == 0 {
			result, err := l.detector.Detect(frame)
			if err != nil {
				log.Warn(log.Fields{"frame": frameCount, "error": err.Error()}, "detection failed, reusing last result")
				current, ok = l.cache.GetOrLast(nil)
			} else {
				current, ok = l.cache.GetOrLast(result)
			}
		} else {
			current, ok = l.cache.GetOrLast(nil)
		}

		if ok {
			Annotate(&frame, current)
		}
		AddInfoOverlay(&frame)

		l.window.IMShow(frame)

		switch key := l.window.WaitKey(1); key {
		case 'q', 'Q':
			log.Info(log.Fields{"frames": frameCount}, "quit key pressed, shutting down")
			return nil
		case 's', 'S':
			filename := path.Join(l.cfg.ScreenshotDir, fmt.Sprintf("face_detection_screenshot_%d.jpg", frameCount))
			if gocv.IMWrite(filename, frame) {
				log.Info(log.Fields{"file": filename}, "screenshot saved")
			} else {
				log.Error(log.Fields{"file": filename}, "could not save screenshot")
			}
		}

		frameCount++
	}
}
