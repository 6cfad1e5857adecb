// Command seed populates a fresh database with a demo roster, a
// default weekly template, and the bootstrap admin, for local
// development and manual testing.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/afuentes/roster-api-go/config"
	"github.com/afuentes/roster-api-go/pkg/auth"
	"github.com/afuentes/roster-api-go/pkg/database"
	"github.com/afuentes/roster-api-go/pkg/logger"
	"github.com/afuentes/roster-api-go/pkg/models"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg, err := config.Load(os.Getenv("ROSTER_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Connect(&cfg.Database, log)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}

	if err := auth.EnsureAdminExists(db, &cfg.Auth, log); err != nil {
		log.Fatal("bootstrap admin", zap.Error(err))
	}

	var empCount int64
	db.Model(&models.Employee{}).Count(&empCount)
	if empCount == 0 {
		employees := []models.Employee{
			{Name: "Marco Reyes", Role: models.RoleCook, IsActive: true, HourlyWage: 22.50},
			{Name: "Dana Whitfield", Role: models.RoleCook, IsActive: true, HourlyWage: 21.00},
			{Name: "Theo Lindqvist", Role: models.RoleCook, IsActive: true, HourlyWage: 19.75},
			{Name: "Priya Shah", Role: models.RoleBartender, IsActive: true, HourlyWage: 16.00},
			{Name: "Jonah Adeyemi", Role: models.RoleBartender, IsActive: true, HourlyWage: 15.50},
			{Name: "Cal Brennan", Role: models.RoleBarback, IsActive: true, HourlyWage: 13.25},
			{Name: "Rosa Delgado", Role: models.RoleBarback, IsActive: true, HourlyWage: 13.25},
		}
		if err := db.Create(&employees).Error; err != nil {
			log.Fatal("seed employees", zap.Error(err))
		}
		log.Info("seeded employees", zap.Int("count", len(employees)))
	}

	var tplCount int64
	db.Model(&models.WeeklyScheduleTemplate{}).Count(&tplCount)
	if tplCount == 0 {
		name := cfg.Scheduling.DefaultTemplate
		var rows []models.WeeklyScheduleTemplate
		for dow := 0; dow <= 6; dow++ {
			weekend := dow == 0 || dow == 5 || dow == 6
			openCounts := models.RoleCounts{Cooks: 1, Bartenders: 1, Barbacks: 0}
			closeCounts := models.RoleCounts{Cooks: 1, Bartenders: 1, Barbacks: 1}
			if weekend {
				openCounts = models.RoleCounts{Cooks: 2, Bartenders: 1, Barbacks: 1}
				closeCounts = models.RoleCounts{Cooks: 2, Bartenders: 2, Barbacks: 1}
			}
			rows = append(rows,
				models.WeeklyScheduleTemplate{Name: name, DayOfWeek: dow, ShiftType: models.ShiftOpen, RoleCounts: openCounts, IsActive: true},
				models.WeeklyScheduleTemplate{Name: name, DayOfWeek: dow, ShiftType: models.ShiftClose, RoleCounts: closeCounts, IsActive: true},
			)
		}
		if err := db.Create(&rows).Error; err != nil {
			log.Fatal("seed template", zap.Error(err))
		}
		log.Info("seeded weekly template", zap.String("name", name), zap.Int("rows", len(rows)))
	}

	log.Info("seed complete")
}
