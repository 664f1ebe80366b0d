package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "vsla-backend/internal/adapter/http"
	mw "vsla-backend/internal/adapter/middleware"
	"vsla-backend/internal/adapter/repository/mysql"
	"vsla-backend/internal/config"
	userDomain "vsla-backend/internal/domain/user"
	"vsla-backend/internal/infrastructure/cache"
	"vsla-backend/internal/infrastructure/db"
	authUC "vsla-backend/internal/usecase/auth"
	contributionUC "vsla-backend/internal/usecase/contribution"
	groupUC "vsla-backend/internal/usecase/group"
	loanUC "vsla-backend/internal/usecase/loan"
	membershipUC "vsla-backend/internal/usecase/membership"
	reportUC "vsla-backend/internal/usecase/report"
	userUC "vsla-backend/internal/usecase/user"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gormDB, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	users := mysql.NewUserRepository(gormDB)
	groups := mysql.NewGroupRepository(gormDB)
	memberships := mysql.NewMembershipRepository(gormDB)
	contributions := mysql.NewContributionRepository(gormDB)
	loans := mysql.NewLoanRepository(gormDB)
	repayments := mysql.NewRepaymentRepository(gormDB)
	unitOfWork := mysql.NewGormUoW(gormDB)

	tokens := authUC.NewUsecase(users, cfg.JWTSecret)
	userSvc := userUC.NewUsecase(users)
	groupSvc := groupUC.NewUsecase(groups)
	membershipSvc := membershipUC.NewUsecase(memberships, groups, loans)
	contributionSvc := contributionUC.NewUsecase(contributions, memberships)
	loanSvc := loanUC.NewUsecase(loans, repayments, groups, memberships, unitOfWork)
	reportSvc := reportUC.NewUsecase(loans, contributions)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(tokens)
	userH := httpadp.NewUserHandler(userSvc)
	groupH := httpadp.NewGroupHandler(groupSvc, membershipSvc)
	contributionH := httpadp.NewContributionHandler(contributionSvc)
	loanH := httpadp.NewLoanHandler(loanSvc)
	reportH := httpadp.NewReportHandler(reportSvc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// public routes
	e.GET("/health", h.Health)
	e.POST("/auth/register", authH.Register)
	e.POST("/auth/login", authH.Login)

	// everything below requires a valid token; mutations are idempotency-guarded
	api := e.Group("", mw.Auth(tokens), mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	api.GET("/users", userH.ListUsers, mw.RequirePermission(userDomain.PermUsersRead))
	api.GET("/users/:user_id", userH.GetUser, mw.RequirePermission(userDomain.PermUsersRead))
	api.PUT("/users/:user_id", userH.UpdateUser, mw.RequirePermission(userDomain.PermUsersUpdate))
	api.PATCH("/users/:user_id/suspend", userH.SuspendUser, mw.RequirePermission(userDomain.PermUsersSuspend))
	api.PATCH("/users/:user_id/activate", userH.ActivateUser, mw.RequirePermission(userDomain.PermUsersSuspend))

	api.POST("/groups", groupH.CreateGroup, mw.RequirePermission(userDomain.PermGroupsCreate))
	api.GET("/groups", groupH.ListGroups, mw.RequirePermission(userDomain.PermGroupsRead))
	api.GET("/groups/:group_id", groupH.GetGroup, mw.RequirePermission(userDomain.PermGroupsRead))
	api.PUT("/groups/:group_id", groupH.UpdateGroup, mw.RequirePermission(userDomain.PermGroupsUpdate))
	api.DELETE("/groups/:group_id", groupH.ArchiveGroup, mw.RequirePermission(userDomain.PermGroupsArchive))
	api.GET("/groups/:group_id/members", groupH.ListMembers, mw.RequirePermission(userDomain.PermGroupsRead))
	api.POST("/groups/:group_id/members", groupH.AddMember, mw.RequirePermission(userDomain.PermMembersManage))
	api.DELETE("/groups/:group_id/members/:user_id", groupH.RemoveMember, mw.RequirePermission(userDomain.PermMembersManage))

	api.POST("/contributions", contributionH.RecordContribution, mw.RequirePermission(userDomain.PermContribCreate))
	api.GET("/contributions", contributionH.ListContributions, mw.RequirePermission(userDomain.PermContribRead))

	api.POST("/loans", loanH.RequestLoan, mw.RequirePermission(userDomain.PermLoansCreate))
	api.GET("/loans", loanH.ListLoans, mw.RequirePermission(userDomain.PermLoansRead))
	api.GET("/loans/:loan_id", loanH.GetLoan, mw.RequirePermission(userDomain.PermLoansRead))
	api.POST("/loans/:loan_id/review", loanH.ReviewLoan, mw.RequirePermission(userDomain.PermLoansReview))
	api.POST("/loans/:loan_id/approve", loanH.ApproveLoan, mw.RequirePermission(userDomain.PermLoansApprove))
	api.POST("/loans/:loan_id/disburse", loanH.DisburseLoan, mw.RequirePermission(userDomain.PermLoansDisburse))
	api.POST("/loans/:loan_id/repay", loanH.RepayLoan, mw.RequirePermission(userDomain.PermLoansRepay))
	api.POST("/loans/:loan_id/default", loanH.DefaultLoan, mw.RequirePermission(userDomain.PermLoansDefault))
	api.GET("/loans/:loan_id/repayments", loanH.ListRepayments, mw.RequirePermission(userDomain.PermLoansRead))

	api.GET("/reports/groups/:group_id/summary", reportH.GroupSummary, mw.RequirePermission(userDomain.PermReportsRead))
	api.GET("/reports/loans", reportH.LoanStatusReport, mw.RequirePermission(userDomain.PermReportsRead))
	api.GET("/reports/users/:user_id/loans", reportH.UserLoanSummary, mw.RequirePermission(userDomain.PermReportsRead))

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
