package services

import (
	"context"
	"fmt"
	"strings"

	"dominium-listings/internal/models"
	"dominium-listings/internal/repositories"
	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/media"
	"dominium-listings/pkg/metrics"
)

// ImageDownloader fetches the raw bytes of a remote image.
type ImageDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// ImageService copies listing photos into media storage.
type ImageService struct {
	downloader ImageDownloader
	store      media.Store
	repo       repositories.ImageRepository
}

func NewImageService(downloader ImageDownloader, store media.Store, repo repositories.ImageRepository) *ImageService {
	return &ImageService{
		downloader: downloader,
		store:      store,
		repo:       repo,
	}
}

type imageCandidate struct {
	url  string
	main bool
}

// TransferImages stores the main image and then the gallery, skipping blank
// and repeated URLs. The first main-flagged image that is stored becomes the
// main one. Every failure becomes a "<url>: <reason>" warning.
func (s *ImageService) TransferImages(ctx context.Context, listingID, mainURL string, gallery []string) []string {
	candidates := make([]imageCandidate, 0, len(gallery)+1)
	candidates = append(candidates, imageCandidate{url: mainURL, main: true})
	for _, u := range gallery {
		candidates = append(candidates, imageCandidate{url: u})
	}

	warnings := []string{}
	seen := make(map[string]bool)
	hasMain := false
	position := 0

	for _, c := range candidates {
		u := strings.TrimSpace(c.url)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true

		img, err := s.transfer(ctx, listingID, u, c.main && !hasMain, position)
		if err != nil {
			metrics.ImageTransfersTotal.WithLabelValues("failed").Inc()
			logger.GlobalLogger.Warnf("Image transfer failed: listing=%s, url=%s, error=%v", listingID, u, err)
			warnings = append(warnings, fmt.Sprintf("%s: %v", u, err))
			continue
		}
		metrics.ImageTransfersTotal.WithLabelValues("stored").Inc()
		if img.IsMain {
			hasMain = true
		}
		position++
	}
	return warnings
}

func (s *ImageService) transfer(ctx context.Context, listingID, url string, main bool, position int) (*models.ListingImage, error) {
	data, err := s.downloader.Download(ctx, url)
	if err != nil {
		return nil, err
	}
	ref, err := s.store.Save(ctx, url, data)
	if err != nil {
		return nil, err
	}
	img := &models.ListingImage{
		ListingID:  listingID,
		SourceURL:  url,
		StorageRef: ref,
		IsMain:     main,
		Position:   position,
	}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}
