package task

import (
	"io"
	"log/slog"
	"testing"

	"github.com/robfig/cron/v3"
)

type namedJob struct{}

func (namedJob) Run()         {}
func (namedJob) Name() string { return "站点刷新" }

type plainJob struct{}

func (*plainJob) Run() {}

func TestResolveJobName_优先自定义名称(t *testing.T) {
	if got := resolveJobName(namedJob{}); got != "站点刷新" {
		t.Fatalf("有 Name() 的任务应用自定义名称, 得到 %q", got)
	}
	if got := resolveJobName(&plainJob{}); got != "task.plainJob" {
		t.Fatalf("无 Name() 的任务应反射出类型名, 得到 %q", got)
	}
}

func TestNewPanicRecoveryWrapper_吞掉任务panic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wrapped := NewPanicRecoveryWrapper(logger)(cron.FuncJob(func() {
		panic("任务内部炸了")
	}))

	// panic 必须止于装饰器，不能冒泡到调度器
	wrapped.Run()
}
