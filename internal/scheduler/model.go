package scheduler

import (
	"time"

	"github.com/trip-kitchen/cook-duty-manager/backend/internal/domain"
)

// 排班参数
type Parameters struct {
	MaxCooksPerMeal              int  // 每餐最多的主厨数量
	MaxHelpersPerMeal            int  // 每餐最多的帮厨数量
	PrioritizeEqualParticipation bool // 是否优先保证参与均衡
	AutoAssignRecipes            bool // 是否自动为餐次分配菜谱
	RecipesPerMeal               int  // 每餐需要的菜谱数量
}

// ParticipantMetrics: 一次排班运行期间某个成员的工作状态
// 由 profiler 根据空闲天数和历史分配记录计算得到，在排班过程中被原地修改，运行结束后即丢弃
type ParticipantMetrics struct {
	Participant        *domain.Participant
	AvailableDays      int        // 空闲天数
	PresenceRatio      float64    // 空闲天数 / 行程总天数
	FairShare          int32      // 按在场比例折算的目标分配次数
	CurrentAssignments int32      // 当前已分配次数（随排班推进增加）
	AssignmentDeficit  int32      // FairShare - CurrentAssignments，可以为负
	MaxAssignments     int32      // 硬性分配上限
	LastAssignedDate   *time.Time // 最近一次被分配的日期，nil 表示从未被分配
	SkillWeight        float64    // 由做饭意愿映射的相对权重
}

// TeamCandidate: 某个餐次槽位上的一个候选队伍
// Members 和 Roles 一一对应，角色按位置划分（先主厨后帮厨），仅在候选生成和打分期间存在
type TeamCandidate struct {
	Members []*ParticipantMetrics
	Roles   []domain.AssignmentRole
	Score   float64
}

// Result: 一次排班运行的完整输出
type Result struct {
	Assignments       []*domain.Assignment
	RecipeAssignments []*domain.RecipeAssignment
	Summaries         []*domain.ScheduleSummary
	Warnings          []string
}
