/*
 * @Description: cron 任务的装饰器：结构化日志与 panic 兜底
 * @Author: 安知鱼
 * @Date: 2026-02-16 10:40:18
 * @LastEditTime: 2026-03-25 19:11:02
 * @LastEditors: 安知鱼
 */
package task

import (
	"log/slog"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// JobWrapper 是 cron.JobWrapper 的类型别名。
type JobWrapper = cron.JobWrapper

// NewLoggingWrapper 为每次任务执行记录开始、结束和耗时。
// 每次执行分配一个独立的 execution_id，同名任务的多次运行在日志里可区分。
func NewLoggingWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		// 任务名在注册后不会变，包装时算一次就够
		jobLogger := logger.With(slog.String("job_name", resolveJobName(j)))
		return cron.FuncJob(func() {
			runLogger := jobLogger.With(slog.String("execution_id", uuid.New().String()))

			start := time.Now()
			runLogger.Info("Job execution started")

			j.Run()

			runLogger.Info("Job execution finished", slog.Duration("duration", time.Since(start)))
		})
	}
}

// NewPanicRecoveryWrapper 捕获任务里的 panic，记录堆栈后吞掉，
// 单个任务炸了不能拖垮整个进程。
func NewPanicRecoveryWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		jobName := resolveJobName(j)
		return cron.FuncJob(func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Job panicked",
						slog.String("job_name", jobName),
						slog.Any("panic", r),
						slog.String("stack_trace", string(debug.Stack())),
					)
				}
			}()

			j.Run()
		})
	}
}

// resolveJobName 取任务的可读名称：优先 Name() 方法，否则反射出类型名。
func resolveJobName(j cron.Job) string {
	if named, ok := j.(interface{ Name() string }); ok {
		return named.Name()
	}
	t := reflect.TypeOf(j)
	if t.Kind() == reflect.Ptr {
		return t.Elem().String()
	}
	return t.String()
}
