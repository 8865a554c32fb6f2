// route-admin - route-gateway運用コンソール
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/api"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/audit"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/config"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/ui"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/ui/cache"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-admin/internal/ui/migration"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/logging"
	"github.com/gdamore/tcell/v2"
)

// ページ名
const (
	pageMainMenu     = "main-menu"
	pageStatus       = "migration-status"
	pageStrategyForm = "strategy-form"
	pageCacheForm    = "cache-form"
	pageConfirm      = "confirm"
	pageError        = "error"
	pageHelp         = "help"
	pageStartupError = "startup-error"
)

// Application はアプリケーション全体を管理する。
type Application struct {
	app    *ui.App
	cfg    *config.Config
	client *api.Client
	audit  *audit.Logger
	status *migration.StatusScreen
}

func main() {
	// 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// 監査ログ・APIクライアント初期化
	application := &Application{
		app:    ui.NewApp(cfg.GatewayURL),
		cfg:    cfg,
		client: api.NewClient(cfg.GatewayURL, cfg.RequestTimeout),
		audit:  audit.NewLogger(cfg.AdminUser, logging.NewMasker(cfg.MaskDrivers)),
	}

	// ゲートウェイ疎通確認
	if err := application.checkGateway(); err != nil {
		application.showStartupError(err)
	} else {
		application.showMainMenu()
	}

	// グローバルキーバインド設定
	application.setupGlobalKeyBindings()

	// アプリケーション実行
	if err := application.app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func (a *Application) checkGateway() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
	defer cancel()
	return a.client.Health(ctx)
}

func (a *Application) showStartupError(err error) {
	modal := ui.NewStartupErrorDialog(a.cfg.GatewayURL, err.Error(),
		func() {
			if err := a.checkGateway(); err != nil {
				a.app.StatusBar().ShowError("Connection failed: " + err.Error())
				return
			}
			a.app.CloseModal(pageStartupError)
			a.showMainMenu()
		},
		a.app.Stop,
	)
	a.app.ShowModal(pageStartupError, modal)
}

func (a *Application) showMainMenu() {
	items := ui.MainMenuItems()
	items[0].Action = a.showStatus
	items[1].Action = a.showStrategyForm
	items[2].Action = a.showCacheForm
	items[3].Action = a.app.Stop

	a.app.ShowScreen(pageMainMenu, ui.NewMenu("route-admin - Main Menu", items, a.app.Stop))
}

func (a *Application) setupGlobalKeyBindings() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case ui.KeyQuit:
			a.app.Stop()
			return nil
		case ui.KeyHelp:
			a.app.ShowModal(pageHelp, ui.NewHelpModal(func() {
				a.app.CloseModal(pageHelp)
			}))
			return nil
		}
		return event
	})
}

// Migration

func (a *Application) showStatus() {
	if a.status == nil {
		a.status = migration.NewStatusScreen(a.app, a.client, a.cfg.HistoryLimit, a.cfg.RequestTimeout)
		a.status.SetOnBack(func() { a.app.SwitchTo(pageMainMenu) })
		a.status.SetOnProgress(a.progress)
		a.status.SetOnRollback(a.rollback)
		a.status.SetOnToggleAuto(a.toggleAuto)
		a.status.SetOnChange(a.showStrategyForm)
	}
	a.app.ShowScreen(pageStatus, a.status.Primitive())
	a.status.Reload()
}

// currentStatus は表示中の移行状態を返す。未読み込みの場合はステータスバーにエラーを出す。
func (a *Application) currentStatus() *api.Status {
	if a.status == nil || a.status.Current() == nil {
		a.app.StatusBar().ShowError("Migration status not loaded yet (press r to refresh)")
		return nil
	}
	return a.status.Current()
}

func (a *Application) progress() {
	st := a.currentStatus()
	if st == nil {
		return
	}
	next, ok := api.NextStrategy(st.Current)
	if !ok {
		a.app.StatusBar().ShowError("Already at " + st.Current)
		return
	}
	a.confirm("Progress Strategy", fmt.Sprintf("Move traffic from %s to %s?", st.Current, next), func() {
		a.changeStrategy(st.Current, next, "manual progression via route-admin")
	})
}

func (a *Application) changeStrategy(from, to, reason string) {
	a.call(func(ctx context.Context) error {
		_, err := a.client.ChangeStrategy(ctx, to, reason)
		a.audit.LogStrategyChange(from, to, reason, err)
		return err
	}, "Strategy changed to "+to)
}

func (a *Application) rollback() {
	st := a.currentStatus()
	if st == nil {
		return
	}
	a.confirm("Rollback Strategy", "Roll back from "+st.Current+" to the previous strategy?", func() {
		const reason = "manual rollback via route-admin"
		a.call(func(ctx context.Context) error {
			_, err := a.client.Rollback(ctx, reason)
			a.audit.LogRollback(st.Current, reason, err)
			return err
		}, "Rolled back from "+st.Current)
	})
}

func (a *Application) toggleAuto() {
	st := a.currentStatus()
	if st == nil {
		return
	}
	enabled := !st.AutoProgression
	label := "disabled"
	if enabled {
		label = "enabled"
	}
	a.call(func(ctx context.Context) error {
		_, err := a.client.SetAutoProgression(ctx, enabled)
		a.audit.LogAutoProgression(enabled, err)
		return err
	}, "Auto progression "+label)
}

func (a *Application) showStrategyForm() {
	current := ""
	if a.status != nil && a.status.Current() != nil {
		current = a.status.Current().Current
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
		st, err := a.client.Status(ctx, 0)
		cancel()
		if err != nil {
			a.showError("Migration Status", err)
			return
		}
		current = st.Current
	}

	form := migration.NewStrategyForm(current)
	form.SetOnCancel(func() { a.app.CloseModal(pageStrategyForm) })
	form.SetOnError(func(err error) { a.app.StatusBar().ShowError(err.Error()) })
	form.SetOnSubmit(func(strategy, reason string) {
		a.app.CloseModal(pageStrategyForm)
		if reason == "" {
			reason = "manual change via route-admin"
		}
		a.changeStrategy(current, strategy, reason)
	})
	a.app.ShowModal(pageStrategyForm, ui.Centered(form.Primitive(), 64, 9))
}

// Cache

func (a *Application) showCacheForm() {
	form := cache.NewForm(a.cfg.DefaultSociete)
	form.SetOnCancel(func() { a.app.SwitchTo(pageMainMenu) })
	form.SetOnError(func(err error) { a.app.StatusBar().ShowError(err.Error()) })
	form.SetOnSubmit(a.invalidate)
	a.app.ShowScreen(pageCacheForm, ui.Centered(form.Primitive(), 60, 11))
}

func (a *Application) invalidate(req cache.Request) {
	if req.AllDates() {
		a.confirm("Invalidate Driver Cache",
			"Delete the token and every cached manifest of\n\n"+req.Societe+" / "+req.Driver+"?",
			func() {
				a.call(func(ctx context.Context) error {
					deleted, err := a.client.InvalidateDriver(ctx, req.Societe, req.Driver)
					a.audit.LogInvalidateDriver(req.Societe, req.Driver, deleted, err)
					return err
				}, "Driver cache invalidated")
			})
		return
	}

	a.confirm("Delete Manifest Cache",
		"Delete the cached manifest of\n\n"+req.Societe+" / "+req.Driver+" / "+req.Date+"?",
		func() {
			a.call(func(ctx context.Context) error {
				err := a.client.DeleteManifest(ctx, req.Societe, req.Driver, req.Date)
				a.audit.LogDeleteManifest(req.Societe, req.Driver, req.Date, err)
				return err
			}, "Manifest cache deleted for "+req.Date)
		})
}

// Helpers

// call は別goroutineでゲートウェイを呼び出し、結果をステータスバーに表示する。
// 成功時に移行状態画面が存在すれば再読み込みする。
func (a *Application) call(fn func(ctx context.Context) error, success string) {
	a.app.StatusBar().ShowInfo("Sending request...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout)
		defer cancel()
		err := fn(ctx)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				if api.IsConflict(err) {
					a.app.StatusBar().ShowError("Rejected: " + err.Error())
					return
				}
				a.showError("Request Failed", err)
				return
			}
			a.app.StatusBar().ShowSuccess(success)
			if a.status != nil && a.app.HasPage(pageStatus) {
				a.status.Reload()
			}
		})
	}()
}

func (a *Application) confirm(title, message string, onConfirm func()) {
	a.app.ShowModal(pageConfirm, ui.NewConfirmDialog(title, message,
		func() {
			a.app.CloseModal(pageConfirm)
			onConfirm()
		},
		func() { a.app.CloseModal(pageConfirm) },
	))
}

func (a *Application) showError(title string, err error) {
	a.app.ShowModal(pageError, ui.NewErrorDialog(title, strings.TrimSpace(err.Error()), func() {
		a.app.CloseModal(pageError)
	}))
}
