package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/models"
)

// ToModelSession converts a domain Session to a model Session.
func ToModelSession(d domain.Session) (models.Session, error) {
	deviceInfo, err := d.DeviceInfo.Value()
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to encode device info: %w", err)
	}
	return models.Session{
		ID:               d.ID,
		UserID:           d.UserID,
		RefreshTokenHash: d.RefreshTokenHash,
		DeviceInfo:       deviceInfo,
		ExpiresAt:        d.ExpiresAt,
		CreatedAt:        d.CreatedAt,
	}, nil
}

// ToDomainSession converts a model Session to a domain Session.
// Unreadable device info is dropped rather than failing the lookup.
func ToDomainSession(m models.Session) domain.Session {
	var deviceInfo domain.DeviceInfo
	if len(m.DeviceInfo) > 0 {
		if err := json.Unmarshal(m.DeviceInfo, &deviceInfo); err != nil {
			deviceInfo = nil
		}
	}
	return domain.Session{
		ID:               m.ID,
		UserID:           m.UserID,
		RefreshTokenHash: m.RefreshTokenHash,
		DeviceInfo:       deviceInfo,
		ExpiresAt:        m.ExpiresAt,
		CreatedAt:        m.CreatedAt,
	}
}

// ToDomainSessionSlice converts a slice of model Sessions to domain Sessions.
func ToDomainSessionSlice(ms []models.Session) []domain.Session {
	ds := make([]domain.Session, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSession(m)
	}
	return ds
}
