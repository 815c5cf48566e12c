package app

import "tasktimer/internal/modules/timer/domain"

type messages struct {
	subtitle         string
	ready            string
	newTask          string
	nameLabel        string
	notesLabel       string
	namePlaceholder  string
	notesPlaceholder string
	emptyName        string
	running          string
	saved            string
	discarded        string
	window           string
	sessions         string
	history          string
	noHistory        string
	stats            string
	phases           map[string]string
}

func (t messages) phase(p string) string {
	if label, ok := t.phases[p]; ok {
		return label
	}
	return p
}

var english = messages{
	subtitle:         "15-minute task timer",
	ready:            "ready",
	newTask:          "New task",
	nameLabel:        "Task",
	notesLabel:       "Notes",
	namePlaceholder:  "what are you working on?",
	notesPlaceholder: "optional",
	emptyName:        "please enter a task name",
	running:          "%s: running until %s",
	saved:            "saved %s (%s)",
	discarded:        "stopped, nothing recorded",
	window:           "window",
	sessions:         "sessions %d · completed %d · total %s",
	history:          "History",
	noHistory:        "no tasks yet",
	stats:            "%d tasks · %d/%d sessions completed · total %s · today %s",
	phases: map[string]string{
		string(domain.PhaseIdle):      "idle",
		string(domain.PhaseRunning):   "running",
		string(domain.PhasePaused):    "paused",
		string(domain.PhaseCompleted): "completed",
	},
}

var taiwanese = messages{
	subtitle:         "15 分鐘任務計時器",
	ready:            "就緒",
	newTask:          "新任務",
	nameLabel:        "任務",
	notesLabel:       "備註",
	namePlaceholder:  "正在做什麼？",
	notesPlaceholder: "選填",
	emptyName:        "請輸入任務名稱",
	running:          "%s：進行到 %s",
	saved:            "已儲存 %s（%s）",
	discarded:        "已停止，未記錄時間",
	window:           "時段",
	sessions:         "階段 %d · 完成 %d · 總計 %s",
	history:          "歷史紀錄",
	noHistory:        "尚無任務",
	stats:            "%d 個任務 · 完成 %d/%d 階段 · 總計 %s · 今日 %s",
	phases: map[string]string{
		string(domain.PhaseIdle):      "閒置",
		string(domain.PhaseRunning):   "進行中",
		string(domain.PhasePaused):    "已暫停",
		string(domain.PhaseCompleted): "已完成",
	},
}

func messagesFor(locale domain.Locale) messages {
	if locale == domain.LocaleTaiwan {
		return taiwanese
	}
	return english
}
