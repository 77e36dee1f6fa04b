package usecase

import (
	"context"

	"lunchVote/internal/modules/realtime/application/port"
	"lunchVote/internal/modules/realtime/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	uc.broadcaster.Broadcast(ctx, msg)
}
