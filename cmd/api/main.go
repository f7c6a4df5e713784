package main

import (
	"fmt"
	"net/http"

	"github.com/campuseats/payroll-backend-go/internal/config"
	appHTTP "github.com/campuseats/payroll-backend-go/internal/handler/http"
	"github.com/campuseats/payroll-backend-go/internal/pkg/database"
	"github.com/campuseats/payroll-backend-go/internal/pkg/jwt"
	"github.com/campuseats/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/campuseats/payroll-backend-go/internal/service/attendance"
	payrollService "github.com/campuseats/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	staffRepo := postgresql.NewStaffRepository(db)
	canteenRepo := postgresql.NewCanteenRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	payrollConfigRepo := postgresql.NewPayrollConfigRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, staffRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, payrollConfigRepo, staffRepo, attendanceRepo, canteenRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		JWTService,
		attendanceHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
