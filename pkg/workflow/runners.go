package workflow

import (
	"github.com/shouni/go-kreator-kit/pkg/runner"
)

var _ Workflow = (*Manager)(nil)

// BuildAvatarRunner は、アバター生成を担当する Runner を作成します。
func (m *Manager) BuildAvatarRunner() (AvatarRunner, error) {
	r, err := runner.NewAvatarRunner(m.deps)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildProductAdRunner は、商品広告シーンの生成を担当する Runner を作成します。
func (m *Manager) BuildProductAdRunner() (ProductAdRunner, error) {
	r, err := runner.NewProductAdRunner(m.deps)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildServiceAdRunner は、サービス広告シーンの生成を担当する Runner を作成します。
func (m *Manager) BuildServiceAdRunner() (ServiceAdRunner, error) {
	r, err := runner.NewServiceAdRunner(m.deps)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildVideoScriptRunner は、動画スクリプトの生成を担当する Runner を作成します。
func (m *Manager) BuildVideoScriptRunner() (VideoScriptRunner, error) {
	r, err := runner.NewVideoScriptRunner(m.deps, m.history)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildViralRunner は、バイラル動画スクリプトの生成を担当する Runner を作成します。
func (m *Manager) BuildViralRunner() (ViralRunner, error) {
	r, err := runner.NewViralRunner(m.deps, m.history)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildEbookRunner は、電子書籍の生成を担当する Runner を作成します。
func (m *Manager) BuildEbookRunner() (EbookRunner, error) {
	r, err := runner.NewEbookRunner(m.deps)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildSongRunner は、歌詞とジャケットの生成を担当する Runner を作成します。
func (m *Manager) BuildSongRunner() (SongRunner, error) {
	r, err := runner.NewSongRunner(m.deps)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildSeoRunner は、SEO 文案の生成を担当する Runner を作成します。
func (m *Manager) BuildSeoRunner() (SeoRunner, error) {
	r, err := runner.NewSeoRunner(m.deps)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// BuildAnalysisRunner は、商品・ロケーション画像の解析を担当する Runner を作成します。
func (m *Manager) BuildAnalysisRunner() (AnalysisRunner, error) {
	r, err := runner.NewAnalysisRunner(m.deps)
	if err != nil {
		return nil, err
	}
	return r, nil
}
