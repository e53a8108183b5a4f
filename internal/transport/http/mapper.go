package http

import (
	"encoding/json"

	"github.com/vkozyrev/huddle-server/internal/core"
	"github.com/vkozyrev/huddle-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeMissingParameters, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandJoinRoom,
			RoomID: join.Room,
			Name:   join.Name,
			PeerID: join.Peer,
		}, nil, nil
	case proto.InboundTypeApprove, proto.InboundTypeDeny, proto.InboundTypeRemove:
		var target proto.TargetData
		if err := json.Unmarshal(inbound.Data, &target); err != nil {
			return nil, nil, err
		}
		if target.Room == "" || target.Target == "" {
			return nil, &proto.Error{Code: core.ErrCodeMissingParameters, Msg: "room and target are required"}, nil
		}
		kind := core.CommandApprove
		switch inbound.Type {
		case proto.InboundTypeDeny:
			kind = core.CommandDeny
		case proto.InboundTypeRemove:
			kind = core.CommandRemoveParticipant
		}
		return &core.Command{
			Kind:     kind,
			RoomID:   target.Room,
			TargetID: target.Target,
		}, nil, nil
	case proto.InboundTypeToggle:
		var toggle proto.ToggleData
		if err := json.Unmarshal(inbound.Data, &toggle); err != nil {
			return nil, nil, err
		}
		if toggle.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeMissingParameters, Msg: "room is required"}, nil
		}
		kind := core.MediaKind(toggle.Kind)
		if kind != core.MediaAudio && kind != core.MediaVideo {
			return nil, &proto.Error{Code: core.ErrCodeMissingParameters, Msg: "kind must be audio or video"}, nil
		}
		return &core.Command{
			Kind:    core.CommandToggleMedia,
			RoomID:  toggle.Room,
			Media:   kind,
			Enabled: toggle.Enabled,
		}, nil, nil
	case proto.InboundTypeChat:
		var msg proto.ChatData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeMissingParameters, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandSendChat,
			RoomID: msg.Room,
			Text:   msg.Text,
		}, nil, nil
	case proto.InboundTypeTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, nil, err
		}
		if typing.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeMissingParameters, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind:    core.CommandTyping,
			RoomID:  typing.Room,
			Started: typing.Started,
		}, nil, nil
	case proto.InboundTypeLeave:
		var leave proto.LeaveData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, nil, err
		}
		if leave.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeMissingParameters, Msg: "room is required"}, nil
		}
		return &core.Command{
			Kind:   core.CommandLeaveRoom,
			RoomID: leave.Room,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventAdmission:
		data := proto.EventAdmissionData{
			Room:   event.RoomID,
			Status: string(event.Admission.Status),
			Reason: event.Admission.Reason,
			SelfID: event.Admission.SelfID,
			HostID: event.Admission.HostID,
		}
		if len(event.Admission.Participants) > 0 {
			data.Participants = participantsToWire(event.Admission.Participants)
		}
		if event.Admission.Chat != nil {
			data.Chat = chatToWire(event.Admission.Chat)
		}
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: proto.EventAdmission, Data: data}
	case core.EventWaitingList:
		waiting := make([]proto.WaitingData, 0, len(event.Waiting))
		for _, w := range event.Waiting {
			waiting = append(waiting, proto.WaitingData{
				ID:        w.ID,
				Name:      w.Name,
				Peer:      w.PeerID,
				Requested: w.RequestedAt.Unix(),
			})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventWaitingList,
			Data:  proto.EventWaitingListData{Room: event.RoomID, Waiting: waiting},
		}
	case core.EventParticipantJoined, core.EventParticipantLeft, core.EventRemoved,
		core.EventParticipantRemoved, core.EventHostTransferred, core.EventHostChanged:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: participantEventName(event.Kind),
			Data: proto.EventParticipantData{
				Room:        event.RoomID,
				Participant: participantToWire(*event.Participant),
			},
		}
	case core.EventMediaToggled:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMediaToggled,
			Data: proto.EventMediaToggledData{
				Room:        event.RoomID,
				Participant: event.Media.ParticipantID,
				Peer:        event.Media.PeerID,
				Kind:        string(event.Media.Kind),
				Enabled:     event.Media.Enabled,
			},
		}
	case core.EventChatMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventChatMessage,
			Data:  chatMessageToWire(*event.Chat),
		}
	case core.EventTyping:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventTyping,
			Data: proto.EventTypingData{
				Room:        event.RoomID,
				Participant: event.Typing.ParticipantID,
				Name:        event.Typing.Name,
				Started:     event.Typing.Started,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func participantEventName(kind core.EventKind) string {
	switch kind {
	case core.EventParticipantJoined:
		return proto.EventParticipantJoined
	case core.EventParticipantLeft:
		return proto.EventParticipantLeft
	case core.EventRemoved:
		return proto.EventRemoved
	case core.EventParticipantRemoved:
		return proto.EventParticipantRemoved
	case core.EventHostTransferred:
		return proto.EventHostTransferred
	default:
		return proto.EventHostChanged
	}
}

func participantToWire(p core.ParticipantInfo) proto.ParticipantData {
	return proto.ParticipantData{
		ID:      p.ID,
		Name:    p.Name,
		Peer:    p.PeerID,
		Joined:  p.JoinedAt.Unix(),
		AudioOn: p.AudioOn,
		VideoOn: p.VideoOn,
		Host:    p.Host,
	}
}

func participantsToWire(infos []core.ParticipantInfo) []proto.ParticipantData {
	out := make([]proto.ParticipantData, 0, len(infos))
	for _, p := range infos {
		out = append(out, participantToWire(p))
	}
	return out
}

func chatMessageToWire(msg core.ChatMessage) proto.ChatMessageData {
	return proto.ChatMessageData{
		ID:       msg.ID,
		Author:   msg.Author,
		Text:     msg.Text,
		TS:       msg.SentAt.Unix(),
		SenderID: msg.SenderID,
		Host:     msg.FromHost,
	}
}

func chatToWire(msgs []core.ChatMessage) []proto.ChatMessageData {
	out := make([]proto.ChatMessageData, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, chatMessageToWire(m))
	}
	return out
}
