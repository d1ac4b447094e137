package sms

import (
	"context"
	"encoding/json"
	"fmt"

	"AllWell/config"
)

// SendIncidentAlert 向值班负责人群发事件告警短信
// phones: 值班负责人手机号列表
// animalName: 涉及动物名称
// incidentType: 事件类型（injury/security）
func SendIncidentAlert(ctx context.Context, phones []string, animalName, incidentType string) error {
	if len(phones) == 0 {
		return fmt.Errorf("phones list is empty")
	}

	cfg := config.Cfg
	signName := cfg.SMSSignName
	templateCode := cfg.SMSTemplateCode

	// 所有接收人使用相同的模板参数
	param := map[string]string{
		"animal": animalName,
		"type":   incidentType,
	}
	paramJSON, err := json.Marshal(param)
	if err != nil {
		return fmt.Errorf("failed to marshal template param: %w", err)
	}

	templateParams := make([]string, len(phones))
	for i := range templateParams {
		templateParams[i] = string(paramJSON)
	}

	// 使用批量发送接口
	return SendBatch(ctx, phones, signName, templateCode, templateParams)
}

// SendRoundReminder 提醒值班负责人某分区的巡查尚未签字
func SendRoundReminder(ctx context.Context, phones []string, roundDate, shift, section string) error {
	if len(phones) == 0 {
		return fmt.Errorf("phones list is empty")
	}

	cfg := config.Cfg
	templateCode := cfg.SMSReminderTemplateCode
	if templateCode == "" {
		templateCode = cfg.SMSTemplateCode
	}

	param := map[string]string{
		"date":    roundDate,
		"shift":   shift,
		"section": section,
	}
	paramJSON, err := json.Marshal(param)
	if err != nil {
		return fmt.Errorf("failed to marshal template param: %w", err)
	}

	templateParams := make([]string, len(phones))
	for i := range templateParams {
		templateParams[i] = string(paramJSON)
	}

	return SendBatch(ctx, phones, cfg.SMSSignName, templateCode, templateParams)
}
