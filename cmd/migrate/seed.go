package main

import (
	"log"

	"device-support-be/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedConfiguration inserts the default categories and analysis prompt
// variants. Existing rows are left untouched so operators can tune
// thresholds without a migration overwriting them.
func seedConfiguration(db *gorm.DB) {
	categories := []model.Category{
		{Key: "general", Name: "General", Description: "Uncategorized devices and issues"},
		{Key: "printer", Name: "Printers", Description: "Printers, scanners and multifunction devices"},
		{Key: "router", Name: "Routers & Networking", Description: "Routers, modems, switches and access points"},
		{Key: "appliance", Name: "Home Appliances", Description: "Washers, dryers, refrigerators and other large appliances"},
		{Key: "computer", Name: "Computers", Description: "Desktops, laptops and monitors"},
		{Key: "mobile", Name: "Mobile Devices", Description: "Phones and tablets"},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&categories).Error; err != nil {
		log.Printf("Warn: Failed to seed categories: %v", err)
	}

	prompts := []model.AnalysisPrompt{
		{
			Key:                 "quick",
			Name:                "Quick Scan",
			Instruction:         "Give a short first-pass diagnosis of the visible problem.",
			SimilarityThreshold: 0.4,
			TopK:                3,
		},
		{
			Key:                 "standard",
			Name:                "Standard Diagnosis",
			Instruction:         "Diagnose the problem and list remediation steps in order.",
			SimilarityThreshold: 0.5,
			TopK:                5,
		},
		{
			Key:                 "deep",
			Name:                "Deep Troubleshooting",
			Instruction:         "Diagnose thoroughly, cover alternative causes and preventive advice.",
			SimilarityThreshold: 0.7,
			TopK:                8,
		},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&prompts).Error; err != nil {
		log.Printf("Warn: Failed to seed analysis prompts: %v", err)
	}
}
