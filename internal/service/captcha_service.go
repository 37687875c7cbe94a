package service

import (
	"strings"
	"sync"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaImageChallenge is an image captcha challenge.
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService issues and verifies image captchas for login endpoints.
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService creates a captcha service.
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled reports whether login captcha is required.
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		maxStore := s.cfg.MaxStore
		if maxStore <= 0 {
			maxStore = base64Captcha.GCLimitNumber
		}
		expireSec := s.cfg.ExpireSeconds
		if expireSec <= 0 {
			expireSec = 300
		}
		s.store = base64Captcha.NewMemoryStore(maxStore, time.Duration(expireSec)*time.Second)
	}
	return s.store
}

// GenerateImageChallenge creates a new captcha challenge.
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	length := s.cfg.Length
	if length <= 0 {
		length = 5
	}
	width := s.cfg.Width
	if width <= 0 {
		width = 240
	}
	height := s.cfg.Height
	if height <= 0 {
		height = 80
	}

	driver := base64Captcha.NewDriverDigit(height, width, length, 0.7, s.cfg.NoiseCount)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{CaptchaID: id, ImageBase64: b64}, nil
}

// Verify checks a captcha answer. Disabled captcha always passes.
func (s *CaptchaService) Verify(captchaID, code string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	code = strings.TrimSpace(code)
	if captchaID == "" || code == "" {
		return ErrCaptchaInvalid
	}
	if !s.ensureStore().Verify(captchaID, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}
