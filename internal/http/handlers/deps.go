package handlers

import (
	"github.com/jmoiron/sqlx"

	"posd/internal/config"
	"posd/internal/repos"
	"posd/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	SupplierHandler *SupplierHandler
	SalesHandler    *SalesHandler
	ReportHandler   *ReportHandler
	SettingsHandler *SettingsHandler
	ExportHandler   *ExportHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	supRepo := repos.NewSupplierRepo(db)
	setRepo := repos.NewSettingsRepo(db)

	prodSvc := services.NewProductService(prodRepo)
	saleSvc := services.NewSalesService(saleRepo)
	supSvc := services.NewSupplierService(supRepo)
	setSvc := services.NewSettingsService(setRepo)
	reportSvc := services.NewReportService(prodRepo, saleRepo)
	exportSvc := services.NewExportService(cfg.ExportDir)
	backupSvc := services.NewBackupService(cfg.DBDSN)

	return &Deps{
		ProductHandler:  &ProductHandler{Products: prodSvc},
		SupplierHandler: &SupplierHandler{Suppliers: supSvc},
		SalesHandler:    &SalesHandler{Sales: saleSvc},
		ReportHandler:   &ReportHandler{Reports: reportSvc},
		SettingsHandler: &SettingsHandler{Settings: setSvc},
		ExportHandler:   &ExportHandler{Reports: reportSvc, Exports: exportSvc, Backups: backupSvc, BackupDir: cfg.DataDir},
	}
}
