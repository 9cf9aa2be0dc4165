package langdetect

import "testing"

func TestDetect(t *testing.T) {
	d := WhatLang{}

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "russian",
			text: "Привет! Расскажи, пожалуйста, какая сегодня погода в Москве и что стоит посмотреть?",
			want: "ru",
		},
		{
			name: "short russian",
			text: "Привет, как дела?",
			want: "ru",
		},
		{
			name: "english",
			text: "Hello there, could you please tell me what the weather is like in London today?",
			want: "en",
		},
		{
			name: "empty defaults to english",
			text: "",
			want: "en",
		},
		{
			name: "whitespace defaults to english",
			text: "   ",
			want: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.want {
				t.Fatalf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
