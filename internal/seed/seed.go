package seed

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/repository"
)

var rosterHeaders = []string{"姓名", "邮箱", "做饭意愿", "空闲日期"}

/**
 * SeedRealData 从 CSV 名单导入一个完整的演示行程：
 * 创建行程、导入成员及其空闲日期、插入菜谱并生成三餐的餐次槽位
 * CSV 的空闲日期列是用 ", " 分隔的 2006-01-02 格式日期，不在行程范围内的日期会被忽略
 */
func SeedRealData(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/roster.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	for _, required := range rosterHeaders {
		if !slices.Contains(headers, required) {
			slog.Error("名单中缺少必要的列", "header", required)
			return
		}
	}

	// 读取数据
	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = value
		}
		records = append(records, record)
	}

	// 创建演示行程
	trip := &domain.Trip{
		Name:        "2025五一阳朔行",
		Description: "五一假期阳朔徒步加漂流，全程自己开火",
		Location:    "阳朔",
		StartDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC),
	}

	if err := r.CreateTrip(trip); err != nil {
		slog.Error("插入行程失败", "error", err)
		return
	}

	// 导入成员及其空闲日期
	for _, record := range records {
		email := record["邮箱"]
		if email == "" {
			slog.Error("没有找到邮箱", "record", record)
			continue
		}

		preference, err := strconv.Atoi(record["做饭意愿"])
		if err != nil || preference < -2 || preference > 2 {
			slog.Error("做饭意愿非法", "value", record["做饭意愿"], "email", email)
			continue
		}

		availability := make([]time.Time, 0)
		for _, raw := range strings.Split(record["空闲日期"], ", ") {
			if raw == "" {
				continue
			}

			date, err := time.Parse("2006-01-02", raw)
			if err != nil {
				slog.Error("转换日期失败", "date", raw, "email", email)
				continue
			}

			day := domain.TruncateToDay(date)
			if day.Before(domain.TruncateToDay(trip.StartDate)) || day.After(domain.TruncateToDay(trip.EndDate)) {
				continue
			}
			availability = append(availability, day)
		}

		participant := &domain.Participant{
			TripID:            trip.ID,
			Name:              record["姓名"],
			Email:             email,
			CookingPreference: int32(preference),
			IsActive:          true,
			AvailabilityDates: availability,
		}

		if err := r.CreateParticipant(participant); err != nil {
			slog.Error("插入成员失败", "error", err, "email", email)
			continue
		}
	}

	// 插入菜谱
	dishes := []struct {
		name        string
		description string
	}{
		{"啤酒鱼", "阳朔本地做法，需要提前买漓江鱼"},
		{"番茄炒蛋", "最快的保底菜"},
		{"酸辣土豆丝", "土豆提前切丝泡水"},
		{"排骨玉米汤", "高压锅炖 40 分钟"},
		{"蛋炒饭", "用前一天的剩饭"},
	}
	for _, dish := range dishes {
		recipe := &domain.Recipe{
			TripID:      trip.ID,
			Name:        dish.name,
			Description: dish.description,
		}
		if err := r.CreateRecipe(recipe); err != nil {
			slog.Error("插入菜谱失败", "error", err, "name", dish.name)
		}
	}

	// 生成三餐的餐次槽位
	mealTypes := []domain.MealType{domain.MealBreakfast, domain.MealLunch, domain.MealDinner}
	if _, err := r.GenerateMealSlots(trip, mealTypes); err != nil {
		slog.Error("生成餐次失败", "error", err)
		return
	}

	slog.Info("插入数据完成", "trip_id", trip.ID)
}
