package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleMember,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var commonLocations = []string{
	"阳朔", "莫干山", "千岛湖", "武功山", "稻城", "大理", "青海湖", "喀纳斯",
}

// 随机生成一个行程，时长 2~7 天
func GenerateRandomTrip() *domain.Trip {
	start := domain.TruncateToDay(time.Now().AddDate(0, 0, rand.Intn(30)+1))
	days := rand.Intn(6) + 2

	return &domain.Trip{
		Name:        "行程" + GenerateRandomID(3, 3),
		Description: "行程描述" + GenerateRandomID(20, 10),
		Location:    commonLocations[rand.Intn(len(commonLocations))],
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, days-1),
	}
}

// 用 Fisher-Yates 洗牌算法从行程的日期中取一个随机子集作为空闲日期
func GenerateRandomAvailability(trip *domain.Trip) []time.Time {
	days := make([]time.Time, 0, trip.TotalDays())
	for d := domain.TruncateToDay(trip.StartDate); !d.After(domain.TruncateToDay(trip.EndDate)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(len(days)) + 1

	return days[:n]
}

// 随机生成一个行程成员，做饭意愿在 [-2, 2] 之间均匀分布
func GenerateRandomParticipant(trip *domain.Trip, emailDomainName string) *domain.Participant {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)

	return &domain.Participant{
		TripID:            trip.ID,
		Name:              fullName,
		Email:             username + "@" + emailDomainName,
		CookingPreference: int32(rand.Intn(5) - 2),
		IsActive:          true,
		AvailabilityDates: GenerateRandomAvailability(trip),
	}
}

var commonDishes = []string{
	"番茄炒蛋", "红烧肉", "清蒸鱼", "麻婆豆腐", "酸辣土豆丝", "宫保鸡丁",
	"蛋炒饭", "青椒肉丝", "排骨汤", "凉拌黄瓜", "烤玉米", "炖羊肉",
}

func GenerateRandomRecipe(tripID int64) *domain.Recipe {
	return &domain.Recipe{
		TripID:      tripID,
		Name:        commonDishes[rand.Intn(len(commonDishes))],
		Description: "做法" + GenerateRandomID(10, 5),
	}
}
