package handler

import (
	"errors"
	"net/http"

	"github.com/clabops/backend-go/internal/domain"
	"github.com/clabops/backend-go/internal/topology"
	"github.com/gin-gonic/gin"
)

// documentRequest carries a topology either as a server-side file path or as
// inline YAML content. Content wins when both are set.
type documentRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (r documentRequest) load() (*domain.Document, error) {
	if r.Content != "" {
		return topology.Parse([]byte(r.Content))
	}
	if r.Path != "" {
		return topology.LoadFile(r.Path)
	}
	return nil, errors.New("either 'path' or 'content' is required")
}

// bindDocument binds and loads a documentRequest, writing the error response
// itself. The bool reports success.
func bindDocument(c *gin.Context) (*domain.Document, bool) {
	var req documentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return nil, false
	}
	doc, err := req.load()
	if err != nil {
		respondLoadError(c, err)
		return nil, false
	}
	return doc, true
}

func respondLoadError(c *gin.Context, err error) {
	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": parseErr.Error(),
			"source": parseErr.Source,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}

func respondCapacityError(c *gin.Context, capErr *domain.CapacityError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"detail":    capErr.Error(),
		"dimension": capErr.Dimension,
		"required":  capErr.Required,
		"available": capErr.Available,
		"shortfall": capErr.Shortfall(),
	})
}
