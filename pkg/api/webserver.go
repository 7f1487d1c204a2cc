package api

import (
	"bytes"
	"image"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"visionsuite/pkg/colors"
	"visionsuite/pkg/log"
	"visionsuite/pkg/utils"
)

//session is the one image the tool currently works on. Uploading a new image
//replaces it, there is no multi-image state.
type session struct {
	ID       string
	Filename string
	Image    *image.RGBA
	Hash     string
}

//Server holds the per-process state behind the color extraction surface: the
//current session and the analysis cache keyed by (image hash, clusters,
//factor)
type Server struct {
	mu       sync.Mutex
	current  *session
	cache    *colors.Cache
	validate *validator.Validate
}

func NewServer() *Server {
	return &Server{
		cache:    colors.NewCache(),
		validate: validator.New(),
	}
}

type analyzeQuery struct {
	Clusters int     `form:"clusters" validate:"required,min=3,max=10"`
	Factor   float64 `form:"factor" validate:"required,gte=0.1,lte=1"`
}

type uploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type analyzeResponse struct {
	Clusters []colors.ColorCluster `json:"clusters"`
	HexList  string                `json:"hex_list"`
	Cached   bool                  `json:"cached"`
	K        int                   `json:"k"`
	Factor   float64               `json:"factor"`
}

//SetRouter wires the HTTP surface in front of the color pipeline
func SetRouter(s *Server) *gin.Engine {
	r := gin.Default()

	//serve html pages to client
	if staticPath := viper.GetString("frontend.static-files-path"); staticPath != "" {
		r.Static("/client", staticPath)
	}

	apiRoutes := r.Group("/api")

	apiRoutes.POST("/Upload", s.Upload)
	apiRoutes.GET("/Analyze", s.Analyze)
	apiRoutes.GET("/ExportCSV", s.ExportCSV)

	apiRoutes.GET("/Exports", func(ctx *gin.Context) {
		if names, err := utils.ListDir(viper.GetString("directory.exports")); err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not list exports"})
		} else {
			ctx.JSON(http.StatusOK, names)
		}
	})

	return r
}

//Upload accepts a new image, decodes it and makes it the current session.
//Analysis results of the previous image become unreachable and are dropped
//from the cache on the next Put.
func (s *Server) Upload(ctx *gin.Context) {
	file, fHeader, err := ctx.Request.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	defer file.Close()

	//strip any directory part a crafted filename may carry before the name
	//touches the filesystem
	filename := path.Base(fHeader.Filename)

	ext := strings.ToLower(path.Ext(filename))
	if !utils.InSlice(ext, utils.AllowedImageExtensions) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type " + ext})
		return
	}

	log.Info(log.Fields{"file": filename, "size": fHeader.Size}, "received new image")

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Error(log.Fields{"error": err.Error()}, "could not read upload body")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not read upload"})
		return
	}

	img, err := colors.Load(fileBytes)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not decode image"})
		return
	}

	//keep the original around, useful when eyeballing results
	if uploadDir := viper.GetString("directory.uploads"); uploadDir != "" {
		if err := os.WriteFile(path.Join(uploadDir, filename), fileBytes, 0644); err != nil {
			log.Warn(log.Fields{"file": filename, "error": err.Error()}, "could not save upload copy")
		}
	}

	sess := &session{
		ID:       uuid.NewString(),
		Filename: filename,
		Image:    img,
		Hash:     colors.Hash(img),
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	ctx.JSON(http.StatusOK, uploadResponse{
		ID:       sess.ID,
		Filename: sess.Filename,
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
	})
}

//Analyze runs (or replays from cache) the clustering for the current image
func (s *Server) Analyze(ctx *gin.Context) {
	result, cached, q, ok := s.analyze(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, analyzeResponse{
		Clusters: result,
		HexList:  colors.HexList(result),
		Cached:   cached,
		K:        q.Clusters,
		Factor:   q.Factor,
	})
}

//ExportCSV streams the current analysis as a CSV download named after the
//uploaded file, keeping a copy in the exports directory
func (s *Server) ExportCSV(ctx *gin.Context) {
	result, _, _, ok := s.analyze(ctx)
	if !ok {
		return
	}

	s.mu.Lock()
	filename := colors.ExportFilename(s.current.Filename)
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := colors.WriteCSV(&buf, result); err != nil {
		log.Error(log.Fields{"error": err.Error()}, "could not render CSV")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not render CSV"})
		return
	}

	if exportDir := viper.GetString("directory.exports"); exportDir != "" {
		if err := os.WriteFile(path.Join(exportDir, filename), buf.Bytes(), 0644); err != nil {
			log.Warn(log.Fields{"file": filename, "error": err.Error()}, "could not save export copy")
		}
	}

	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "text/csv", buf.Bytes())
}

//analyze validates the query, resolves the cache and computes on a miss.
//A failed analysis leaves the session and the cache untouched.
func (s *Server) analyze(ctx *gin.Context) ([]colors.ColorCluster, bool, analyzeQuery, bool) {
	var q analyzeQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid parameters"})
		return nil, false, q, false
	}
	if err := s.validate.Struct(q); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "clusters must be 3-10 and factor 0.1-1.0"})
		return nil, false, q, false
	}

	s.mu.Lock()
	sess := s.current
	s.mu.Unlock()

	if sess == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no image uploaded"})
		return nil, false, q, false
	}

	key := colors.Key{Hash: sess.Hash, Clusters: q.Clusters, Factor: q.Factor}
	if result, hit := s.cache.Get(key); hit {
		return result, true, q, true
	}

	result, err := colors.Analyze(sess.Image, q.Clusters, q.Factor,
		viper.GetInt("cluster.restarts"))
	if err != nil {
		log.Error(log.Fields{"error": err.Error()}, "analysis failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return nil, false, q, false
	}

	s.cache.Put(key, result)
	return result, false, q, true
}
