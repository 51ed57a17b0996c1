package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/SyaefulEffendi/bahasaku-server/internal/detector"
	"github.com/SyaefulEffendi/bahasaku-server/internal/dto"
	"github.com/SyaefulEffendi/bahasaku-server/internal/repository"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DetectionService interface {
	// Predict runs the uploaded image through the detection model and
	// cross-references the top label against the vocabulary catalog.
	Predict(ctx context.Context, imageBytes []byte) (*dto.PredictResponse, error)
}

type detectionService struct {
	// model is the process-wide detection capability, created once at
	// startup. nil means the model never became ready.
	model         detector.Client
	minConfidence float64
	kosaKataRepo  repository.KosaKataRepository
	log           *zap.Logger
}

func NewDetectionService(model detector.Client, minConfidence float64, kosaKataRepo repository.KosaKataRepository, log *zap.Logger) DetectionService {
	return &detectionService{
		model:         model,
		minConfidence: minConfidence,
		kosaKataRepo:  kosaKataRepo,
		log:           log,
	}
}

func (s *detectionService) Predict(ctx context.Context, imageBytes []byte) (*dto.PredictResponse, error) {
	if s.model == nil {
		return nil, fmt.Errorf("%w: detection model is not ready", apperror.ErrUnavailable)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(imageBytes)); err != nil {
		s.log.Error("failed to decode uploaded image", zap.Error(err))
		return nil, fmt.Errorf("%w: error processing image", apperror.ErrInternal)
	}

	detections, err := s.model.Detect(ctx, imageBytes, s.minConfidence)
	if err != nil {
		s.log.Error("model inference failed", zap.Error(err))
		return nil, fmt.Errorf("%w: error processing image", apperror.ErrInternal)
	}

	// The model orders detections by confidence; the first one above the
	// threshold wins.
	var top *detector.Detection
	for i := range detections {
		if detections[i].Confidence >= s.minConfidence {
			top = &detections[i]
			break
		}
	}

	if top == nil || top.Label == "" {
		return &dto.PredictResponse{Text: "", FoundInDB: false}, nil
	}

	item, err := s.kosaKataRepo.MatchText(ctx, top.Label)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.PredictResponse{
				Text:       top.Label,
				Confidence: top.Confidence,
				FoundInDB:  false,
			}, nil
		}
		return nil, err
	}

	return &dto.PredictResponse{
		Text:       top.Label,
		Confidence: top.Confidence,
		FoundInDB:  true,
		DBDetail:   dto.NewKosaKataDetail(item),
	}, nil
}
