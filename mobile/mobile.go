//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 仅在 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.pong -o build/android/pong.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Pong.xcframework ./mobile
//
// 移动端不嵌入配置文件，使用内置默认配置；设置通过 gdata 保存在应用私有目录。
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/pong/pkg/app"
	"github.com/gonewx/pong/pkg/game"
	"github.com/gonewx/pong/pkg/utils"
)

func init() {
	logger, err := utils.NewLogger(true)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	var store *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: "pong"}); err == nil {
		store = m
	} else {
		logger.Warn("gdata unavailable, settings will not persist")
	}
	settings, _ := game.NewSettingsManager(store, logger)

	gameApp, err := app.NewApp(app.Config{Settings: settings, Logger: logger})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 空导出函数，保证包能被 ebitenmobile 识别
func Dummy() {}
