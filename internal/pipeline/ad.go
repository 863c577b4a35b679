package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/shouni/go-kreator-kit/internal/builder"
	"github.com/shouni/go-kreator-kit/pkg/domain"
	"github.com/shouni/go-kreator-kit/pkg/generator"
	"github.com/shouni/go-kreator-kit/pkg/publisher"
	"github.com/shouni/go-kreator-kit/pkg/runner"
	"github.com/shouni/go-kreator-kit/pkg/workflow"
)

// AvatarInput はアバター生成の入力なのだ。Image があれば参照画像から作るのだ。
type AvatarInput struct {
	Idea         string `yaml:"idea"`
	Style        string `yaml:"style"`
	Image        string `yaml:"image"`
	Mode         string `yaml:"mode"`
	Instructions string `yaml:"instructions"`
	SaveAs       string `yaml:"save_as"`
}

// VideoInput は広告シーンに続けて動画スクリプトを作るときの設定なのだ。Scenes が 0 なら作らないのだ。
type VideoInput struct {
	Scenes       int    `yaml:"scenes"`
	Description  string `yaml:"description"`
	Language     string `yaml:"language"`
	CallToAction string `yaml:"cta"`
	Framing      string `yaml:"framing"`
	TVName       string `yaml:"tv_name"`
	NewsLocation string `yaml:"news_location"`
}

// ProductInput は商品広告シーンの入力なのだ。
type ProductInput struct {
	Image         string     `yaml:"image"`
	Product       string     `yaml:"product"`
	Avatar        string     `yaml:"avatar"`
	Category      string     `yaml:"category"`
	Style         string     `yaml:"style"`
	Location      string     `yaml:"location"`
	StyleLocation string     `yaml:"style_location"`
	SaveAs        string     `yaml:"save_as"`
	Video         VideoInput `yaml:"video"`
}

// ServiceInput はサービス広告シーンの入力なのだ。
type ServiceInput struct {
	Description   string     `yaml:"description"`
	Avatar        string     `yaml:"avatar"`
	Style         string     `yaml:"style"`
	Location      string     `yaml:"location"`
	StyleLocation string     `yaml:"style_location"`
	Video         VideoInput `yaml:"video"`
}

// VideoScriptInput は既存のマスターシーンから動画スクリプトだけを作る入力なのだ。
type VideoScriptInput struct {
	MasterScene     string     `yaml:"master_scene"`
	MasterSceneFile string     `yaml:"master_scene_file"`
	Product         string     `yaml:"product"`
	ProductDNA      string     `yaml:"product_dna"`
	Avatar          string     `yaml:"avatar"`
	Style           string     `yaml:"style"`
	Location        string     `yaml:"location"`
	StyleLocation   string     `yaml:"style_location"`
	Video           VideoInput `yaml:"video"`
}

// ExecuteAvatar はアバターを生成して書き出し、必要なら DNA を保存するのだ。
func ExecuteAvatar(ctx context.Context, appCtx *builder.AppContext, in AvatarInput) (*Report, error) {
	wf, err := appCtx.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	r, err := wf.BuildAvatarRunner()
	if err != nil {
		return nil, fmt.Errorf("AvatarRunnerの構築に失敗したのだ: %w", err)
	}

	var res domain.AvatarResult
	if strings.TrimSpace(in.Image) != "" {
		img, err := loadImage(in.Image)
		if err != nil {
			return nil, err
		}
		res, err = r.RunFromImage(ctx, runner.AvatarImageRequest{
			Image:                  *img,
			Mode:                   runner.AvatarAnalysisMode(orDefault(in.Mode, string(runner.AvatarModeReplicate))),
			AdditionalInstructions: in.Instructions,
		})
		if err != nil {
			return nil, fmt.Errorf("参照画像からのアバター生成に失敗したのだ: %w", err)
		}
	} else {
		res, err = r.RunFromIdea(ctx, runner.AvatarIdeaRequest{Idea: in.Idea, Style: in.Style})
		if err != nil {
			return nil, fmt.Errorf("アイデアからのアバター生成に失敗したのだ: %w", err)
		}
	}

	published, err := appCtx.Publisher.PublishAvatar(ctx, res, appCtx.PublishOptions())
	if err != nil {
		return nil, fmt.Errorf("アバターの書き出しに失敗したのだ: %w", err)
	}
	report := &Report{Kind: publisher.KindAvatar, Published: published}
	return report, saveAsset(ctx, appCtx, report, domain.AssetAvatar, in.SaveAs, firstImage(published), res.Identity)
}

// ExecuteProductAd は商品広告シーンを生成し、Video.Scenes があれば続けて動画スクリプトも作るのだ。
func ExecuteProductAd(ctx context.Context, appCtx *builder.AppContext, in ProductInput) (*Report, error) {
	style, err := ParseVideoStyle(in.Style)
	if err != nil {
		return nil, err
	}
	req := runner.ProductAdRequest{Category: in.Category, Style: style, StyleLocation: in.StyleLocation}
	if req.ProductImage, err = loadImage(in.Image); err != nil {
		return nil, err
	}
	if req.Product, err = resolveSubject(ctx, appCtx, domain.AssetProduct, in.Product); err != nil {
		return nil, err
	}
	if req.Avatar, err = resolveSubject(ctx, appCtx, domain.AssetAvatar, in.Avatar); err != nil {
		return nil, err
	}
	if req.Location, err = resolveSubject(ctx, appCtx, domain.AssetLocation, in.Location); err != nil {
		return nil, err
	}

	wf, err := appCtx.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	r, err := wf.BuildProductAdRunner()
	if err != nil {
		return nil, fmt.Errorf("ProductAdRunnerの構築に失敗したのだ: %w", err)
	}
	res, err := r.Run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("商品広告シーンの生成に失敗したのだ: %w", err)
	}

	published, err := appCtx.Publisher.PublishProductAd(ctx, res, appCtx.PublishOptions())
	if err != nil {
		return nil, fmt.Errorf("商品広告シーンの書き出しに失敗したのだ: %w", err)
	}
	report := &Report{Kind: publisher.KindProduct, Published: published}

	if in.Video.Scenes > 0 {
		productName := orDefault(req.Product.Name(), in.Category)
		product, err := generator.NewIdentityDNA(generator.LabelProduct, productName, res.ProductIdentity)
		if err != nil {
			return report, err
		}
		avatar, err := generator.FromSubject(generator.LabelAvatar, req.Avatar)
		if err != nil {
			return report, err
		}
		vreq, err := videoRequest(in.Video, style, res.ScenePrompt, orDefault(in.Video.Description, in.Category), avatar, product, req.Location, in.StyleLocation)
		if err != nil {
			return report, err
		}
		if report.Video, err = runVideoScript(ctx, appCtx, wf, vreq); err != nil {
			return report, err
		}
	}

	if in.Image != "" {
		return report, saveAsset(ctx, appCtx, report, domain.AssetProduct, in.SaveAs, in.Image, res.ProductIdentity)
	}
	return report, saveAsset(ctx, appCtx, report, domain.AssetProduct, in.SaveAs, firstImage(published), res.ProductIdentity)
}

// ExecuteServiceAd はサービス広告シーンを生成し、Video.Scenes があれば続けて動画スクリプトも作るのだ。
func ExecuteServiceAd(ctx context.Context, appCtx *builder.AppContext, in ServiceInput) (*Report, error) {
	style, err := ParseVideoStyle(in.Style)
	if err != nil {
		return nil, err
	}
	req := runner.ServiceAdRequest{Description: in.Description, Style: style, StyleLocation: in.StyleLocation}
	if req.Avatar, err = resolveSubject(ctx, appCtx, domain.AssetAvatar, in.Avatar); err != nil {
		return nil, err
	}
	if req.Location, err = resolveSubject(ctx, appCtx, domain.AssetLocation, in.Location); err != nil {
		return nil, err
	}

	wf, err := appCtx.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	r, err := wf.BuildServiceAdRunner()
	if err != nil {
		return nil, fmt.Errorf("ServiceAdRunnerの構築に失敗したのだ: %w", err)
	}
	res, err := r.Run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("サービス広告シーンの生成に失敗したのだ: %w", err)
	}

	published, err := appCtx.Publisher.PublishServiceAd(ctx, res, appCtx.PublishOptions())
	if err != nil {
		return nil, fmt.Errorf("サービス広告シーンの書き出しに失敗したのだ: %w", err)
	}
	report := &Report{Kind: publisher.KindService, Published: published}

	if in.Video.Scenes > 0 {
		service, err := generator.NewIdentityDNA(generator.LabelService, "", domain.IdentityDescription(res.Analysis))
		if err != nil {
			return report, err
		}
		avatar, err := generator.FromSubject(generator.LabelAvatar, req.Avatar)
		if err != nil {
			return report, err
		}
		vreq, err := videoRequest(in.Video, style, res.ScenePrompt, orDefault(in.Video.Description, in.Description), avatar, service, req.Location, in.StyleLocation)
		if err != nil {
			return report, err
		}
		if report.Video, err = runVideoScript(ctx, appCtx, wf, vreq); err != nil {
			return report, err
		}
	}
	return report, nil
}

// ExecuteVideoScript は保存済みの DNA とマスターシーンから動画スクリプトだけを作るのだ。
func ExecuteVideoScript(ctx context.Context, appCtx *builder.AppContext, in VideoScriptInput) (*Report, error) {
	style, err := ParseVideoStyle(in.Style)
	if err != nil {
		return nil, err
	}

	master := in.MasterScene
	if strings.TrimSpace(master) == "" && in.MasterSceneFile != "" {
		data, err := os.ReadFile(in.MasterSceneFile)
		if err != nil {
			return nil, fmt.Errorf("マスターシーン '%s' の読み込みに失敗しました: %w", in.MasterSceneFile, err)
		}
		master = string(data)
	}

	productSubject, err := resolveSubject(ctx, appCtx, domain.AssetProduct, in.Product)
	if err != nil {
		return nil, err
	}
	productText := domain.IdentityDescription(in.ProductDNA)
	if productSubject.IsSaved() {
		productText = productSubject.Identity()
	}
	product, err := generator.NewIdentityDNA(generator.LabelProduct, productSubject.Name(), productText)
	if err != nil {
		return nil, err
	}

	avatarSubject, err := resolveSubject(ctx, appCtx, domain.AssetAvatar, in.Avatar)
	if err != nil {
		return nil, err
	}
	avatar, err := generator.FromSubject(generator.LabelAvatar, avatarSubject)
	if err != nil {
		return nil, err
	}
	location, err := resolveSubject(ctx, appCtx, domain.AssetLocation, in.Location)
	if err != nil {
		return nil, err
	}

	vreq, err := videoRequest(in.Video, style, domain.ScenePrompt(strings.TrimSpace(master)), in.Video.Description, avatar, product, location, in.StyleLocation)
	if err != nil {
		return nil, err
	}
	wf, err := appCtx.Workflow(ctx)
	if err != nil {
		return nil, err
	}
	video, err := runVideoScript(ctx, appCtx, wf, vreq)
	if err != nil {
		return nil, err
	}
	return &Report{Kind: publisher.KindVideo, Published: *video}, nil
}

// videoRequest は広告シーンの結果と VideoInput から動画スクリプトのリクエストを組み立てるのだ。
func videoRequest(in VideoInput, style domain.VideoStyle, master domain.ScenePrompt, description string, avatar *generator.IdentityDNA, product generator.IdentityDNA, location domain.Subject, styleLocation string) (runner.VideoScriptRequest, error) {
	framing, err := ParseFraming(in.Framing)
	if err != nil {
		return runner.VideoScriptRequest{}, err
	}
	return runner.VideoScriptRequest{
		MasterScene:   master,
		Description:   strings.TrimSpace(description),
		Style:         style,
		Language:      orDefault(in.Language, DefaultLanguage),
		Scenes:        in.Scenes,
		CallToAction:  in.CallToAction,
		Avatar:        avatar,
		Framing:       framing,
		Product:       product,
		TVName:        in.TVName,
		NewsLocation:  in.NewsLocation,
		StyleLocation: styleLocation,
		Location:      location,
	}, nil
}

// runVideoScript は VideoScriptRunner を実行して script.md を書き出すのだ。
func runVideoScript(ctx context.Context, appCtx *builder.AppContext, wf workflow.Workflow, req runner.VideoScriptRequest) (*publisher.PublishResult, error) {
	slog.InfoContext(ctx, "動画スクリプトの生成を開始するのだ...", "scenes", req.Scenes, "style", string(req.Style))
	r, err := wf.BuildVideoScriptRunner()
	if err != nil {
		return nil, fmt.Errorf("VideoScriptRunnerの構築に失敗したのだ: %w", err)
	}
	script, err := r.Run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("動画スクリプトの生成に失敗したのだ: %w", err)
	}
	published, err := appCtx.Publisher.PublishVideoScript(ctx, script, appCtx.PublishOptions())
	if err != nil {
		return nil, fmt.Errorf("動画スクリプトの書き出しに失敗したのだ: %w", err)
	}
	return &published, nil
}
