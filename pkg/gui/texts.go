package gui

import (
	"fmt"

	"github.com/qnkhuat/gestris/pkg"
)

type Texts struct {
	Lang       string
	Language   string
	SoundOn    string
	SoundOff   string
	Resolution string
	CustomRes  string
	Theme      string
	Back       string
	Score      string
	Next       string
	Time       string
	Player     string
	GameOver   string
	PressEsc   string
	Paused     string
	Saved      string
	Loaded     string
	NoSave     string
	BadSave    string
	NoGame     string
	Controls   string

	Actions map[pkg.Action]string
}

var texts = map[string]Texts{
	"ru": {
		Lang:       "ru",
		Language:   "Язык: Русский",
		SoundOn:    "Звук: Вкл",
		SoundOff:   "Звук: Выкл",
		Resolution: "Разрешение: %dx%d",
		CustomRes:  "Ввести разрешение вручную",
		Theme:      "Тема: %s",
		Back:       "Назад",
		Score:      "Счет: ",
		Next:       "Далее",
		Time:       "Время: ",
		Player:     "Игрок: ",
		GameOver:   "Вы проиграли",
		PressEsc:   "Нажмите ESC",
		Paused:     "Пауза",
		Saved:      "Игра сохранена!",
		Loaded:     "Игра загружена",
		NoSave:     "Нет сохранения",
		BadSave:    "Сохранение повреждено",
		NoGame:     "Нет активной игры",
		Controls:   "←→ ход  ↑ поворот  ↓ вниз  пробел сброс  P пауза  S сохранить  M меню",
		Actions: map[pkg.Action]string{
			pkg.ActionNewGame:    "Новая игра",
			pkg.ActionLoadGame:   "Загрузить игру",
			pkg.ActionSaveGame:   "Сохранить игру",
			pkg.ActionHighscores: "Рекорды",
			pkg.ActionSettings:   "Настройки",
			pkg.ActionExit:       "Выход",
		},
	},
	"en": {
		Lang:       "en",
		Language:   "Language: English",
		SoundOn:    "Sound: On",
		SoundOff:   "Sound: Off",
		Resolution: "Resolution: %dx%d",
		CustomRes:  "Enter resolution manually",
		Theme:      "Theme: %s",
		Back:       "Back",
		Score:      "Score: ",
		Next:       "Next",
		Time:       "Time: ",
		Player:     "Player: ",
		GameOver:   "Game Over",
		PressEsc:   "Press ESC",
		Paused:     "Paused",
		Saved:      "Game saved!",
		Loaded:     "Game loaded",
		NoSave:     "No saved game",
		BadSave:    "Saved game is corrupt",
		NoGame:     "No game in progress",
		Controls:   "←→ move  ↑ rotate  ↓ down  space drop  P pause  S save  M menu",
		Actions: map[pkg.Action]string{
			pkg.ActionNewGame:    "New Game",
			pkg.ActionLoadGame:   "Load Game",
			pkg.ActionSaveGame:   "Save Game",
			pkg.ActionHighscores: "Highscores",
			pkg.ActionSettings:   "Settings",
			pkg.ActionExit:       "Exit",
		},
	},
}

// TextsFor falls back to Russian, the default language.
func TextsFor(lang string) Texts {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts["ru"]
}

func (t Texts) Sound(on bool) string {
	if on {
		return t.SoundOn
	}
	return t.SoundOff
}

func (t Texts) ResolutionLabel(res []int) string {
	if len(res) != 2 {
		return fmt.Sprintf(t.Resolution, 0, 0)
	}
	return fmt.Sprintf(t.Resolution, res[0], res[1])
}

func (t Texts) CustomResLabel(on bool) string {
	mark := ' '
	if on {
		mark = 'X'
	}
	return fmt.Sprintf("[%c] %s", mark, t.CustomRes)
}
