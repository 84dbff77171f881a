package resource

import (
	"context"

	"github.com/botbee/botbee-backend/internal/entity"
)

type IngestionUsecase interface {
	IngestFile(ctx context.Context, req *entity.IngestFileRequest) (*entity.Resource, error)
	IngestURL(ctx context.Context, req *entity.IngestURLRequest) (*entity.Resource, error)
	IngestAudio(ctx context.Context, req *entity.IngestAudioRequest) (*entity.Resource, error)
	ListResources(ctx context.Context, req *entity.ListResourcesRequest) (*entity.ResourcePage, error)
	DeleteResource(ctx context.Context, resourceID, userID string) error
}
