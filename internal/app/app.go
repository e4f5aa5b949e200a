package app

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/makeupglamours/shop/internal/adapters/describe/openai"
	"github.com/makeupglamours/shop/internal/adapters/httpserver"
	"github.com/makeupglamours/shop/internal/adapters/kv"
	"github.com/makeupglamours/shop/internal/adapters/repo/memory"
	"github.com/makeupglamours/shop/internal/adapters/repo/postgres"
	"github.com/makeupglamours/shop/internal/adapters/storage/localfs"
	"github.com/makeupglamours/shop/internal/config"
	"github.com/makeupglamours/shop/internal/domain"
	"github.com/makeupglamours/shop/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	Cfg       *config.Config
	ProductUC *usecase.ProductUC
	SlideUC   *usecase.SlideUC
	ConfigUC  *usecase.ConfigUC
	CartUC    *usecase.CartUC
	Storage   domain.FileStorage
	Auth      domain.Authenticator
	Describer domain.Describer
	OAuth     *oauth2.Config
}

// NewApp wires repositories, stores and use cases for the configured
// backend. db is nil when the in-memory backend is selected.
func NewApp(cfg *config.Config, db *gorm.DB) (*App, error) {
	_ = os.MkdirAll(cfg.StorageDir, 0o755)
	storage := localfs.New(cfg.StorageDir)

	var store domain.KVStore
	if cfg.RedisAddr != "" {
		r, err := kv.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		store = r
		log.Info().Str("addr", cfg.RedisAddr).Msg("carritos en redis")
	} else {
		store = kv.NewMemory()
		log.Info().Msg("carritos en memoria; se pierden al reiniciar")
	}

	var (
		products  domain.ProductRepo
		slides    domain.SlideRepo
		siteCfg   domain.SiteConfigRepo
		defConfig = memory.DefaultSiteConfig()
	)
	if db != nil {
		products = postgres.NewProductRepo(db)
		slides = postgres.NewSlideRepo(db)
		siteCfg = postgres.NewConfigRepo(db, defConfig)
	} else {
		prodRepo := memory.NewProductRepo()
		slideRepo := memory.NewSlideRepo()
		if err := memory.Seed(context.Background(), prodRepo, slideRepo); err != nil {
			return nil, err
		}
		products = prodRepo
		slides = slideRepo
		siteCfg = memory.NewConfigRepo(defConfig)
	}

	var describer domain.Describer
	if cfg.OpenAIKey != "" {
		describer = openai.New(cfg.OpenAIKey)
	}

	var oauthCfg *oauth2.Config
	if cfg.GoogleID != "" && cfg.GoogleSecr != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.GoogleID,
			ClientSecret: cfg.GoogleSecr,
			RedirectURL:  cfg.BaseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	a := &App{DB: db, Cfg: cfg, Storage: storage, Describer: describer, OAuth: oauthCfg}
	a.Auth = usecase.StaticAuthenticator{Username: cfg.AdminUser, Password: cfg.AdminPass}
	a.ProductUC = &usecase.ProductUC{Products: products}
	a.SlideUC = &usecase.SlideUC{Slides: slides}
	a.ConfigUC = &usecase.ConfigUC{Config: siteCfg, Storage: storage}
	a.CartUC = &usecase.CartUC{Products: products, Config: siteCfg, Store: store}
	return a, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Options{
		Products:      a.ProductUC,
		Slides:        a.SlideUC,
		SiteConfig:    a.ConfigUC,
		Carts:         a.CartUC,
		Storage:       a.Storage,
		Auth:          a.Auth,
		Describer:     a.Describer,
		OAuth:         a.OAuth,
		AdminAllowed:  a.Cfg.AllowedEmails(),
		SessionSecret: a.Cfg.SessionKey,
		UploadsDir:    a.Cfg.StorageDir,
	})
}

func (a *App) Migrate() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.AutoMigrate(
		&domain.Product{}, &domain.Variant{}, &domain.Image{}, &domain.Slide{}, &domain.SiteConfig{},
	)
}
