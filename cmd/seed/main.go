package main

import (
	"errors"
	"os"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	defer func() {
		_ = models.CloseDB()
	}()

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 等级折扣
	discounts := []models.GradeDiscount{
		{Grade: "ANIMATEUR_ADJOINT", DiscountPercent: decimal.NewFromInt(5)},
		{Grade: "ANIMATEUR", DiscountPercent: decimal.NewFromInt(10)},
		{Grade: "MANAGER_ADJOINT", DiscountPercent: decimal.NewFromInt(15)},
		{Grade: "MANAGER", DiscountPercent: decimal.NewFromInt(18)},
	}
	for _, row := range discounts {
		var existing models.GradeDiscount
		err := models.DB.Where("grade = ?", row.Grade).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := models.DB.Create(&row).Error; err != nil {
				stdLog.Printf("Failed to create discount %s: %v", row.Grade, err)
			} else {
				stdLog.Printf("Created discount: %s (%s%%)", row.Grade, row.DiscountPercent.String())
			}
		case err != nil:
			stdLog.Printf("Failed to load discount %s: %v", row.Grade, err)
		default:
			stdLog.Printf("Discount already exists: %s", row.Grade)
		}
	}

	// 示例商品
	products := []models.Product{
		{SKU: "FLP-015", Name: "Aloe Vera Gel", BasePrice: 17500, CC: models.MustDecimal3("0.087"), WeightKg: models.MustDecimal3("1.1"), Active: true, Category: "Boissons", StockQty: 40},
		{SKU: "FLP-034", Name: "Aloe Berry Nectar", BasePrice: 17500, CC: models.MustDecimal3("0.087"), WeightKg: models.MustDecimal3("1.1"), Active: true, Category: "Boissons", StockQty: 25},
		{SKU: "FLP-028", Name: "Forever Bright Toothgel", BasePrice: 5500, CC: models.MustDecimal3("0.027"), WeightKg: models.MustDecimal3("0.15"), Active: true, Category: "Hygiène", StockQty: 60},
		{SKU: "FLP-061", Name: "Aloe Heat Lotion", BasePrice: 8500, CC: models.MustDecimal3("0.043"), WeightKg: models.MustDecimal3("0.14"), Active: true, Category: "Soins", StockQty: 12},
		{SKU: "FLP-037", Name: "Nature-Min", BasePrice: 12500, CC: models.MustDecimal3("0.071"), WeightKg: models.MustDecimal3("0.2"), Active: false, Category: "Nutrition"},
	}
	for _, prod := range products {
		var existing models.Product
		err := models.DB.Where("sku = ?", prod.SKU).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.SKU, err)
			} else {
				stdLog.Printf("Created product: %s", prod.SKU)
			}
		case err != nil:
			stdLog.Printf("Failed to load product %s: %v", prod.SKU, err)
		default:
			stdLog.Printf("Product already exists: %s", prod.SKU)
		}
	}

	// 默认管理员
	if err := models.InitDefaultAdmin(os.Getenv("APPFBO_DEFAULT_ADMIN_USERNAME"), os.Getenv("APPFBO_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	stdLog.Printf("Seed completed")
}
