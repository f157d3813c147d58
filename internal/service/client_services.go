package service

import (
	"github.com/MKhiriev/go-drive-cli/internal/adapter"
	"github.com/MKhiriev/go-drive-cli/internal/config"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/internal/store"
)

type ClientServices struct {
	TransferService TransferService
}

func NewClientServices(drive adapter.DriveAdapter, storages *store.ClientStorages, cfg config.ClientTransfer, log *logger.Logger) *ClientServices {
	var history store.TransferHistoryRepository
	if storages != nil {
		history = storages.TransferHistory
	}

	return &ClientServices{
		TransferService: NewTransferService(drive, history, cfg, log),
	}
}
