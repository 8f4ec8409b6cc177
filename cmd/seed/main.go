package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/config"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/repository"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/seed"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var tripID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机行程, 3: 插入随机成员, 4: 插入随机菜谱, 5: 生成三餐餐次, 6: 插入真实数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&tripID, "trip-id", 0, "操作 3、4、5 的目标行程 ID")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("无法生成随机用户", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("无法插入用户", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入用户成功", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的行程数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			trip := utils.GenerateRandomTrip()
			if err := repo.CreateTrip(trip); err != nil {
				slog.Error("无法插入行程", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入行程成功", slog.Int("count", cnt))
	case 3:
		trip, ok := mustGetTrip(repo, tripID)
		if !ok {
			return
		}
		if n <= 0 {
			slog.Error("请输入合法的成员数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			p := utils.GenerateRandomParticipant(trip, cfg.Email.UserDomain)
			if err := repo.CreateParticipant(p); err != nil {
				slog.Error("无法插入成员", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入成员成功", slog.Int("count", cnt))
	case 4:
		trip, ok := mustGetTrip(repo, tripID)
		if !ok {
			return
		}
		if n <= 0 {
			slog.Error("请输入合法的菜谱数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			recipe := utils.GenerateRandomRecipe(trip.ID)
			if err := repo.CreateRecipe(recipe); err != nil {
				slog.Error("无法插入菜谱", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入菜谱成功", slog.Int("count", cnt))
	case 5:
		trip, ok := mustGetTrip(repo, tripID)
		if !ok {
			return
		}

		mealTypes := []domain.MealType{domain.MealBreakfast, domain.MealLunch, domain.MealDinner}
		slots, err := repo.GenerateMealSlots(trip, mealTypes)
		if err != nil {
			slog.Error("无法生成餐次", slog.String("error", err.Error()))
			return
		}

		slog.Info("生成餐次成功", slog.Int("count", len(slots)))
	case 6:
		seed.SeedRealData(repo)
	default:
		slog.Error("指定的操作非法")
	}
}

func mustGetTrip(repo *repository.Repository, tripID int64) (*domain.Trip, bool) {
	if tripID <= 0 {
		slog.Error("请输入合法的行程 ID")
		return nil, false
	}

	trip, err := repo.GetTripByID(tripID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			slog.Error("指定的行程不存在", slog.Int64("trip_id", tripID))
		default:
			slog.Error("无法获取行程", slog.String("error", err.Error()))
		}
		return nil, false
	}

	return trip, true
}
