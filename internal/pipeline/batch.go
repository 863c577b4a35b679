package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/internal/logging"
	"github.com/shouni/go-kreator-kit/pkg/domain"
)

// Job はバッチファイルの一件分なのだ。種類ごとの入力のうち、ちょうど一つだけを指定するのだ。
type Job struct {
	Name    string            `yaml:"name"`
	Avatar  *AvatarInput      `yaml:"avatar"`
	Product *ProductInput     `yaml:"product"`
	Service *ServiceInput     `yaml:"service"`
	Video   *VideoScriptInput `yaml:"video"`
	Viral   *ViralInput       `yaml:"viral"`
	Ebook   *EbookInput       `yaml:"ebook"`
	Song    *SongInput        `yaml:"song"`
	Seo     *SeoInput         `yaml:"seo"`
	Analyze *AnalyzeInput     `yaml:"analyze"`
}

// JobFile はバッチファイル全体の形なのだ。
type JobFile struct {
	Jobs []Job `yaml:"jobs"`
}

// JobResult は一件分の実行結果なのだ。
type JobResult struct {
	Name     string
	Report   *Report
	Err      error
	Duration time.Duration
}

// LoadJobs はバッチファイルを読み込み、各ジョブの形を検査するのだ。
func LoadJobs(path string) ([]Job, error) {
	var file JobFile
	if err := readYAMLFile(path, &file); err != nil {
		return nil, err
	}
	if len(file.Jobs) == 0 {
		return nil, domain.NewValidationError("jobs", fmt.Sprintf("ジョブが一件もありません: %s", path))
	}
	for i := range file.Jobs {
		if file.Jobs[i].Name == "" {
			file.Jobs[i].Name = fmt.Sprintf("job-%d", i+1)
		}
		if n := file.Jobs[i].kinds(); n != 1 {
			return nil, domain.NewValidationError("jobs", fmt.Sprintf("%s: 種類はちょうど一つ指定してください (%d 個指定されています)", file.Jobs[i].Name, n))
		}
	}
	return file.Jobs, nil
}

func (j Job) kinds() int {
	n := 0
	for _, set := range []bool{
		j.Avatar != nil, j.Product != nil, j.Service != nil, j.Video != nil, j.Viral != nil,
		j.Ebook != nil, j.Song != nil, j.Seo != nil, j.Analyze != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Run はジョブの種類に応じた Execute 関数を呼ぶのだ。
func (j Job) Run(ctx context.Context, appCtx *builder.AppContext) (*Report, error) {
	switch {
	case j.Avatar != nil:
		return ExecuteAvatar(ctx, appCtx, *j.Avatar)
	case j.Product != nil:
		return ExecuteProductAd(ctx, appCtx, *j.Product)
	case j.Service != nil:
		return ExecuteServiceAd(ctx, appCtx, *j.Service)
	case j.Video != nil:
		return ExecuteVideoScript(ctx, appCtx, *j.Video)
	case j.Viral != nil:
		return ExecuteViral(ctx, appCtx, *j.Viral)
	case j.Ebook != nil:
		return ExecuteEbook(ctx, appCtx, *j.Ebook)
	case j.Song != nil:
		return ExecuteSong(ctx, appCtx, *j.Song)
	case j.Seo != nil:
		return ExecuteSeo(ctx, appCtx, *j.Seo)
	case j.Analyze != nil:
		return ExecuteAnalyze(ctx, appCtx, *j.Analyze)
	default:
		return nil, domain.NewValidationError("jobs", fmt.Sprintf("%s: 種類が指定されていません", j.Name))
	}
}

// ExecuteBatch は互いに独立したジョブを最大 concurrency 件ずつ並行に実行します。
// 一件の失敗で他のジョブは止めず、結果は入力と同じ順番で返すのだ。
// 各ジョブの中の工程はこれまでどおり順番に実行されるのだ。
func ExecuteBatch(ctx context.Context, appCtx *builder.AppContext, jobs []Job, concurrency int) ([]JobResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]JobResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			logger := logging.WithJobID(appCtx.Logger, job.Name)
			logger.InfoContext(ctx, "ジョブを開始するのだ")
			start := time.Now()

			report, err := job.Run(ctx, appCtx)
			results[i] = JobResult{Name: job.Name, Report: report, Err: err, Duration: time.Since(start)}
			if err != nil {
				logger.ErrorContext(ctx, "ジョブが失敗したのだ", "error", err)
				return nil
			}
			logger.InfoContext(ctx, "ジョブが完了したのだ", "dir", report.Published.Dir, "elapsed", results[i].Duration)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return results, errors.Join(errs...)
}
