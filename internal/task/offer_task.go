package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"shopnav_dev_v1_202608/internal/repository"
)

// OfferTask 过期活动下线任务
// 过了 end_date 的活动置为停用，避免顾客端靠查询时间窗兜底太久
type OfferTask struct {
	OfferRepo repository.OfferRepository
	Cron      *cron.Cron
}

func NewOfferTask(offerRepo repository.OfferRepository) *OfferTask {
	return &OfferTask{
		OfferRepo: offerRepo,
		Cron:      cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *OfferTask) Start() {
	// 首次执行
	go func() {
		log.Println("[Task] 服务启动，正在执行首次过期活动清理...")
		t.expireJob()
	}()

	// 每小时整点执行
	// Cron 表达式: "0 0 * * * *" (秒 分 时 日 月 周)
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		t.expireJob()
	})
	if err != nil {
		log.Fatalf("无法启动活动过期任务: %v", err)
	}

	t.Cron.Start()
	log.Println("活动过期任务已启动 (每小时检查一次)")
}

// Stop 停止定时任务
func (t *OfferTask) Stop() {
	t.Cron.Stop()
}

func (t *OfferTask) expireJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	affected, err := t.OfferRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		log.Printf("[Cron] 过期活动清理失败: %v", err)
		return
	}
	if affected > 0 {
		log.Printf("[Cron] 已下线 %d 个过期活动", affected)
	}
}
