package usecase

import (
	"context"
	"io"
	"path"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/makeupglamours/shop/internal/domain"
)

type ConfigUC struct {
	Config  domain.SiteConfigRepo
	Storage domain.FileStorage
}

func (uc *ConfigUC) Get(ctx context.Context) (*domain.SiteConfig, error) {
	return uc.Config.Get(ctx)
}

func (uc *ConfigUC) Update(ctx context.Context, patch domain.SiteConfigPatch) (*domain.SiteConfig, error) {
	return uc.Config.Update(ctx, patch)
}

// UpdateLogo uploads the new logo, points the config at it and then removes
// the previous file. If the config write fails the fresh upload is rolled
// back; a failed cleanup of the old file is only logged, the config already
// moved on.
func (uc *ConfigUC) UpdateLogo(ctx context.Context, filename string, r io.Reader) (*domain.SiteConfig, error) {
	current, err := uc.Config.Get(ctx)
	if err != nil {
		return nil, err
	}
	name := "logo-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + path.Ext(filename)
	publicURL, err := uc.Storage.Save(name, r)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.Config.Update(ctx, domain.SiteConfigPatch{LogoURL: &publicURL})
	if err != nil {
		_ = uc.Storage.Delete(publicURL)
		return nil, err
	}
	if old := current.LogoURL; old != "" {
		if err := uc.Storage.Delete(old); err != nil {
			log.Warn().Err(err).Str("url", old).Msg("no se pudo borrar el logo anterior")
		}
	}
	return cfg, nil
}
