package gemini

import (
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/cheercast/internal/logger"
)

// Options configures the Gemini client.
type Options struct {
	APIKeys     []string
	Model       string
	TTSModel    string
	Temperature float32
}

type implClient struct {
	opts   Options
	logger logger.Logger

	mu         sync.Mutex
	currentKey int
	clients    map[string]*genai.Client
}

// New creates a Client that rotates through the supplied API keys.
func New(opts Options, log logger.Logger) Client {
	return &implClient{
		opts:    opts,
		logger:  log,
		clients: make(map[string]*genai.Client),
	}
}
